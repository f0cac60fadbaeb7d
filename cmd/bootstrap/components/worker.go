package components

import (
	"context"
	"log/slog"

	"grocery-api/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewInvalidationHandler,
		worker.NewInvoiceHandler,
		worker.NewOrderStatusPushHandler,
		worker.NewOfferBroadcastHandler,
		NewWorkerHandlers,
		worker.NewDispatcher,
	),
	fx.Invoke(startDispatcher),
)

func NewWorkerHandlers(
	invalidation *worker.InvalidationHandler,
	invoice *worker.InvoiceHandler,
	statusPush *worker.OrderStatusPushHandler,
	broadcast *worker.OfferBroadcastHandler,
) []worker.Handler {
	return []worker.Handler{invalidation, invoice, statusPush, broadcast}
}

func startDispatcher(lc fx.Lifecycle, dispatcher *worker.Dispatcher, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting outbox dispatcher")
			go dispatcher.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("stopping outbox dispatcher")
			cancel()
			return nil
		},
	})
}
