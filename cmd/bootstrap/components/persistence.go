package components

import (
	"parkhub/internal/infra"
	"parkhub/internal/infra/readstore"
	"parkhub/internal/infra/repository"
	"parkhub/internal/infra/uow"
	"parkhub/internal/usecase/queries"
	"parkhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewLotReadStore,
			fx.As(new(queries.LotViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserViewRepo)),
		),
		// Concrete type: the notification worker drives the outbox directly.
		repository.NewNotificationRepository,
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
