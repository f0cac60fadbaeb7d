package components

import (
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewVerificationCommands,
		commands.NewCartCommands,
		commands.NewOrderCommands,
		commands.NewOrderStatusCommands,
		commands.NewCatalogCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewOrderQueries,
		queries.NewCatalogQueries,
	),
)
