package components

import (
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) *gateway.UserDirectoryClient {
			return gateway.NewUserDirectoryClient(cfg.Upstream)
		},
		func(cfg config.Config) *gateway.RoomCatalogClient {
			return gateway.NewRoomCatalogClient(cfg.Upstream)
		},
		func(cfg config.Config) *gateway.HotelDirectoryClient {
			return gateway.NewHotelDirectoryClient(cfg.Upstream)
		},
		func(cfg config.Config) *gateway.PaymentProcessorClient {
			return gateway.NewPaymentProcessorClient(cfg.Upstream)
		},
		func(c *gateway.UserDirectoryClient) commands.UserDirectory { return c },
		func(c *gateway.RoomCatalogClient) commands.RoomCatalog { return c },
		func(c *gateway.RoomCatalogClient) queries.RoomFetcher { return c },
		func(c *gateway.HotelDirectoryClient) queries.HotelFetcher { return c },
		func(c *gateway.PaymentProcessorClient) commands.PaymentProcessor { return c },
		func(c *gateway.PaymentProcessorClient) queries.PaymentFetcher { return c },
		NewNotifier,
	),
)

// NewNotifier yields a nil interface when no notifier endpoint is configured,
// which the workflow reads as "notifications disabled".
func NewNotifier(cfg config.Config) commands.Notifier {
	client := gateway.NewNotifierClient(cfg.Upstream)
	if client == nil {
		return nil
	}
	return client
}
