package components

import (
	"stayhub/internal/infra/memstore"
	"stayhub/internal/infra/repository"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewReservationStore,
		NewIdempotencyStore,
		func(store commands.ReservationRepository) queries.BookingReader {
			return store
		},
	),
)

func NewReservationStore(cfg config.Config, pool *pgxpool.Pool) commands.ReservationRepository {
	if cfg.Storage.Driver == "memory" {
		return memstore.NewReservationStore()
	}
	return repository.NewReservationRepository(pool)
}

func NewIdempotencyStore(cfg config.Config, pool *pgxpool.Pool, clk clock.Clock) commands.IdempotencyRepository {
	if cfg.Storage.Driver == "memory" {
		return memstore.NewIdempotencyStore(clk)
	}
	return repository.NewIdempotencyRepository(pool)
}
