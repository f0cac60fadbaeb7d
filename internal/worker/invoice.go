package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/invoice"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/infra/storage"
	"grocery-api/internal/usecase/shared"
)

// InvoiceHandler renders and uploads the PDF for a newly created or
// freshly confirmed order. A failure is written onto the order and the
// error returned, so the dispatcher retries the job.
type InvoiceHandler struct {
	uow      shared.UnitOfWork
	orders   shared.OrderRepository
	renderer invoice.Renderer
	storage  storage.InvoiceStorage
}

func NewInvoiceHandler(uow shared.UnitOfWork, orders shared.OrderRepository, renderer invoice.Renderer, store storage.InvoiceStorage) *InvoiceHandler {
	return &InvoiceHandler{
		uow:      uow,
		orders:   orders,
		renderer: renderer,
		storage:  store,
	}
}

func (h *InvoiceHandler) Kind() string {
	return shared.JobKindInvoice
}

func (h *InvoiceHandler) Handle(ctx context.Context, job repository.Job) error {
	var payload shared.InvoicePayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		slog.Error("invoice payload malformed", "job_id", job.ID, "error", err.Error())
		return nil
	}

	var ord *order.Order
	err := h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		o, err := h.orders.FindByID(ctx, dbtx, payload.OrderID)
		if err != nil {
			return err
		}
		ord = o
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("order vanished before invoicing", "order_id", payload.OrderID)
			return nil
		}
		return err
	}

	// Idempotent guard: regenerating over an existing invoice is never done
	if !ord.NeedsInvoice() {
		return nil
	}

	pdf, err := h.renderer.Render(ord)
	if err != nil {
		return h.recordFailure(ctx, payload, err)
	}

	objectPath := fmt.Sprintf("invoices/%s/%s.pdf", ord.ID, ord.Number)
	url, err := h.storage.Upload(ctx, objectPath, pdf)
	if err != nil {
		return h.recordFailure(ctx, payload, err)
	}

	return h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return h.orders.SetInvoiceURL(ctx, dbtx, ord.ID, url)
	})
}

// recordFailure flags the order and passes the original error back for retry.
func (h *InvoiceHandler) recordFailure(ctx context.Context, payload shared.InvoicePayload, cause error) error {
	err := h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return h.orders.SetInvoiceFailure(ctx, dbtx, payload.OrderID, cause.Error())
	})
	if err != nil {
		slog.Error("failed to record invoice failure", "order_id", payload.OrderID, "error", err.Error())
	}
	return cause
}
