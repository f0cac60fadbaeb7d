package components

import (
	"context"

	"grocery-api/internal/infra/invoice"
	"grocery-api/internal/infra/push"
	"grocery-api/internal/infra/sms"
	"grocery-api/internal/infra/storage"
	"grocery-api/internal/infra/verification"
	"grocery-api/internal/pkg/config"
	"grocery-api/internal/usecase/commands"

	"go.uber.org/fx"
)

// AdapterModule wires the external providers: Twilio for SMS, FCM for
// push, GCS for invoice storage and Redis for verification state.
var AdapterModule = fx.Module("adapters",
	fx.Provide(
		fx.Annotate(
			verification.NewRedisStore,
			fx.As(new(commands.VerificationStore)),
		),
		fx.Annotate(
			sms.NewTwilioSender,
			fx.As(new(commands.CodeSender)),
		),
		fx.Annotate(
			NewPushSender,
			fx.As(new(push.Sender)),
		),
		fx.Annotate(
			NewInvoiceStorage,
			fx.As(new(storage.InvoiceStorage)),
		),
		fx.Annotate(
			invoice.NewPDFRenderer,
			fx.As(new(invoice.Renderer)),
		),
	),
)

func NewPushSender(cfg config.Config) (*push.FCMSender, error) {
	return push.NewFCMSender(context.Background(), cfg)
}

func NewInvoiceStorage(lc fx.Lifecycle, cfg config.Config) (*storage.GCSStorage, error) {
	store, cleanup, err := storage.NewGCSStorage(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return store, nil
}
