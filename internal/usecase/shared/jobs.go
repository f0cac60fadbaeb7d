package shared

import (
	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
)

// Outbox job kinds. Jobs are enqueued in the same transaction as the
// write that triggers them and picked up by the worker loop.
const (
	JobKindCartInvalidation = "cart_invalidation"
	JobKindInvoice          = "invoice_generation"
	JobKindOrderStatusPush  = "order_status_push"
	JobKindOfferBroadcast   = "offer_broadcast"
)

// CartInvalidationPayload carries the before/after offer snapshots so
// the worker can classify the change without re-reading the offer row,
// which may have moved on by the time the job runs.
type CartInvalidationPayload struct {
	Previous *catalog.Offer `json:"previous,omitempty"`
	Current  *catalog.Offer `json:"current,omitempty"`
}

type InvoicePayload struct {
	OrderID uuid.UUID `json:"orderId"`
}

type OrderStatusPushPayload struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      uuid.UUID `json:"userId"`
	Status      string    `json:"status"`
}

type OfferBroadcastPayload struct {
	OfferID uuid.UUID `json:"offerId"`
	Name    string    `json:"name"`
}
