package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"grocery-api/internal/handler/middleware"
	"grocery-api/internal/pkg/config"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
