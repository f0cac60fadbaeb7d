package commands

import (
	"context"

	"github.com/google/uuid"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/infra"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrOrderNotFound     = errs.New("order not found")
	ErrInvalidStatus     = errs.New("unknown order status")
	ErrStatusWriteFailed = errs.New("failed to persist status change")
)

type OrderStatusCommands interface {
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*order.Order, error)
}

type orderStatusCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderStatusCommands(uow shared.UnitOfWork, clock clock.Clock) OrderStatusCommands {
	return &orderStatusCommandsImpl{uow: uow, clock: clock}
}

// UpdateStatus advances the order through its lifecycle, appending to the
// status history. A transition into confirmed re-enqueues invoice
// generation; any status with a push message enqueues a notification.
func (o *orderStatusCommandsImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*order.Order, error) {
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}
	now := o.clock.Now()

	var updated *order.Order
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Orders().FindByID(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrStatusWriteFailed)
		}

		if err := current.Transition(next, now); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), current); err != nil {
			return errs.Mark(err, ErrStatusWriteFailed)
		}

		if next == order.StatusConfirmed {
			payload := shared.InvoicePayload{OrderID: current.ID}
			if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindInvoice, payload, now); err != nil {
				return errs.Mark(err, ErrStatusWriteFailed)
			}
		}

		if _, ok := order.NotificationFor(next); ok {
			payload := shared.OrderStatusPushPayload{
				OrderID:     current.ID,
				OrderNumber: current.Number,
				UserID:      current.Customer.UserID,
				Status:      next.String(),
			}
			if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindOrderStatusPush, payload, now); err != nil {
				return errs.Mark(err, ErrStatusWriteFailed)
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
