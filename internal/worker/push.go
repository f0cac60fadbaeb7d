package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/push"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/pkg/config"
	"grocery-api/internal/usecase/shared"
)

// OrderStatusPushHandler notifies a customer's registered devices when
// their order changes status. Delivery failures are logged and
// swallowed; a lost notification is never worth a retried job.
type OrderStatusPushHandler struct {
	uow    shared.UnitOfWork
	users  shared.UserRepository
	sender push.Sender
}

func NewOrderStatusPushHandler(uow shared.UnitOfWork, users shared.UserRepository, sender push.Sender) *OrderStatusPushHandler {
	return &OrderStatusPushHandler{uow: uow, users: users, sender: sender}
}

func (h *OrderStatusPushHandler) Kind() string {
	return shared.JobKindOrderStatusPush
}

func (h *OrderStatusPushHandler) Handle(ctx context.Context, job repository.Job) error {
	var payload shared.OrderStatusPushPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		slog.Error("status push payload malformed", "job_id", job.ID, "error", err.Error())
		return nil
	}

	notification, ok := order.NotificationFor(order.Status(payload.Status))
	if !ok {
		return nil
	}

	var tokens []string
	err := h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		account, err := h.users.FindByID(ctx, dbtx, payload.UserID)
		if err != nil {
			return err
		}
		tokens = account.DeviceTokens
		return nil
	})
	if err != nil {
		slog.Warn("could not load devices for status push",
			"user_id", payload.UserID, "order", payload.OrderNumber, "error", err.Error())
		return nil
	}
	if len(tokens) == 0 {
		return nil
	}

	data := map[string]string{
		"orderId":     payload.OrderID.String(),
		"orderNumber": payload.OrderNumber,
		"status":      payload.Status,
	}
	if err := h.sender.SendToTokens(ctx, tokens, notification.Title, notification.Body, data); err != nil {
		slog.Warn("status push delivery failed",
			"user_id", payload.UserID, "order", payload.OrderNumber, "error", err.Error())
	}
	return nil
}

// OfferBroadcastHandler announces a newly activated offer to the global
// offers topic.
type OfferBroadcastHandler struct {
	sender push.Sender
	topic  string
}

func NewOfferBroadcastHandler(sender push.Sender, cfg config.Config) *OfferBroadcastHandler {
	return &OfferBroadcastHandler{sender: sender, topic: cfg.Push.OffersTopic}
}

func (h *OfferBroadcastHandler) Kind() string {
	return shared.JobKindOfferBroadcast
}

func (h *OfferBroadcastHandler) Handle(ctx context.Context, job repository.Job) error {
	var payload shared.OfferBroadcastPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		slog.Error("broadcast payload malformed", "job_id", job.ID, "error", err.Error())
		return nil
	}

	data := map[string]string{"offerId": payload.OfferID.String()}
	err := h.sender.SendToTopic(ctx, h.topic, "New offer available", payload.Name, data)
	if err != nil {
		slog.Warn("offer broadcast failed", "offer_id", payload.OfferID, "error", err.Error())
	}
	return nil
}
