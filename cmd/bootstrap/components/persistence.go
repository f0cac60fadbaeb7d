package components

import (
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/readstore"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/infra/uow"
	"grocery-api/internal/usecase/queries"
	"grocery-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogViewRepo)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewCartRepository,
			fx.As(new(shared.CartRepository)),
		),
		fx.Annotate(
			repository.NewOfferRepository,
			fx.As(new(shared.OfferRepository)),
		),
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(shared.ProductRepository)),
		),
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(shared.OrderRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(shared.UserRepository)),
		),
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(shared.OutboxRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
