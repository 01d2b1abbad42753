package components

import (
	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			booking.NewNightlyRateQuoter,
			fx.As(new(booking.PriceQuoter)),
		),
		commands.NewBookingUseCase,
		queries.NewBookingQueries,
		queries.NewDetailQueries,
	),
)
