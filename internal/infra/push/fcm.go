package push

import (
	"context"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"grocery-api/internal/pkg/config"
	"grocery-api/internal/pkg/errs"
)

// Sender dispatches push notifications to device tokens or topics.
type Sender interface {
	SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) error
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}

// FCMSender sends through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(ctx context.Context, cfg config.Config) (*FCMSender, error) {
	var opts []option.ClientOption
	if cfg.Push.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Push.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to initialize firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to initialize fcm messaging client")
	}
	return &FCMSender{client: client}, nil
}

// SendToTokens fans out to each registered device. Per-token failures
// (stale tokens, uninstalled apps) are logged and do not fail the send.
func (s *FCMSender) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return errs.Wrap(err, "fcm multicast send failed")
	}
	if resp.FailureCount > 0 {
		slog.Warn("some push deliveries failed",
			"failed", resp.FailureCount,
			"succeeded", resp.SuccessCount)
	}
	return nil
}

func (s *FCMSender) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return errs.Wrap(err, "fcm topic send failed")
	}
	return nil
}
