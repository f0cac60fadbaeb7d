package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/usecase/shared"
)

// flagBatchSize bounds each batched cart update.
const flagBatchSize = 500

// InvalidationHandler reacts to offer writes: it classifies the change,
// scans every cart for references to the offer, and flags the hits in
// batches. Failures are logged and swallowed; checkout-time validation
// is authoritative, so a missed flag only costs UX, never correctness.
type InvalidationHandler struct {
	uow   shared.UnitOfWork
	carts shared.CartRepository
}

func NewInvalidationHandler(uow shared.UnitOfWork, carts shared.CartRepository) *InvalidationHandler {
	return &InvalidationHandler{uow: uow, carts: carts}
}

func (h *InvalidationHandler) Kind() string {
	return shared.JobKindCartInvalidation
}

func (h *InvalidationHandler) Handle(ctx context.Context, job repository.Job) error {
	var payload shared.CartInvalidationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		slog.Error("invalidation payload malformed", "job_id", job.ID, "error", err.Error())
		return nil
	}

	change := catalog.OfferChange{Previous: payload.Previous, Current: payload.Current}
	kind := change.Classify()
	if !kind.Invalidates() {
		return nil
	}
	offerID := change.OfferID()

	var affected []uuid.UUID
	err := h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		refs, err := h.carts.ScanAll(ctx, dbtx)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			for _, line := range ref.OfferLines {
				if line.OfferID == offerID {
					affected = append(affected, ref.UserID)
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("cart scan failed during invalidation",
			"offer_id", offerID, "change", string(kind), "error", err.Error())
		return nil
	}

	slog.Info("invalidating carts for offer change",
		"offer_id", offerID, "change", string(kind), "carts", len(affected))

	for start := 0; start < len(affected); start += flagBatchSize {
		end := min(start+flagBatchSize, len(affected))
		batch := affected[start:end]

		err := h.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
			return h.carts.FlagInvalid(ctx, dbtx, batch, offerID)
		})
		if err != nil {
			slog.Error("failed to flag cart batch",
				"offer_id", offerID, "batch_start", start, "error", err.Error())
		}
	}
	return nil
}
