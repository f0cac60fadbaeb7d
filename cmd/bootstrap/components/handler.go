package components

import (
	"grocery-api/internal/handler"
	"grocery-api/internal/handler/api"
	"grocery-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewCatalogHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
