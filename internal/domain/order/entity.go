package order

import (
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/pkg/errs"
)

var (
	ErrInvalidFulfillment     = errs.New("fulfillment method must be delivery or pickup")
	ErrMissingDeliveryDetails = errs.New("delivery orders require address, city and postal code")
	ErrMissingPickupDetails   = errs.New("pickup orders require a pickup time")
	ErrPickupNotInFuture      = errs.New("pickup time must be in the future")
	ErrEmptyCart              = errs.New("cart contains no items")
	ErrInvalidTransition      = errs.New("invalid order status transition")
)

// Customer holds the contact fields denormalized onto the order at
// checkout so the snapshot survives later profile edits.
type Customer struct {
	UserID    uuid.UUID `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
}

// Order is the immutable priced snapshot taken from a cart at checkout.
// Line items are full copies, including the nested product breakdown,
// and are never re-derived from live catalog state.
type Order struct {
	ID                uuid.UUID
	Number            string
	Customer          Customer
	OfferLines        []cart.OfferLine
	ProductLines      []cart.ProductLine
	Totals            Totals
	Fulfillment       FulfillmentMethod
	Delivery          *DeliveryDetails
	Pickup            *PickupDetails
	Status            Status
	History           []StatusChange
	EstimatedDelivery *time.Time
	InvoiceURL        *string
	InvoiceFailed     bool
	InvoiceError      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Fulfillment struct {
	Method   FulfillmentMethod
	Delivery *DeliveryDetails
	Pickup   *PickupDetails
}

// ValidateFulfillment checks the method-specific detail block.
func (f Fulfillment) Validate(now time.Time) error {
	switch f.Method {
	case MethodDelivery:
		if f.Delivery == nil || f.Delivery.Address == "" || f.Delivery.City == "" || f.Delivery.PostalCode == "" {
			return ErrMissingDeliveryDetails
		}
	case MethodPickup:
		if f.Pickup == nil {
			return ErrMissingPickupDetails
		}
		if !f.Pickup.PickupAt.After(now) {
			return ErrPickupNotInFuture
		}
	default:
		return ErrInvalidFulfillment
	}
	return nil
}

// estimatedDeliveryLeadTime is a fixed heuristic, not a logistics estimate.
const estimatedDeliveryLeadTime = 2 * time.Hour

// New snapshots the cart into a pending order. The cart must already have
// passed validation; aggregates are trusted as-is.
func New(number string, customer Customer, c *cart.Cart, f Fulfillment, now time.Time) (*Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := f.Validate(now); err != nil {
		return nil, err
	}

	totals := ComputeTotals(c.SubtotalCents, c.SavingsCents, f.Method)

	o := &Order{
		ID:           uuid.New(),
		Number:       number,
		Customer:     customer,
		OfferLines:   append([]cart.OfferLine(nil), c.OfferLines...),
		ProductLines: append([]cart.ProductLine(nil), c.ProductLines...),
		Totals:       totals,
		Fulfillment:  f.Method,
		Delivery:     f.Delivery,
		Pickup:       f.Pickup,
		Status:       StatusPending,
		History:      []StatusChange{{Status: StatusPending, At: now}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if f.Method == MethodDelivery {
		eta := now.Add(estimatedDeliveryLeadTime)
		o.EstimatedDelivery = &eta
	}
	return o, nil
}

// Transition moves the order to the next status, appending to the
// history log. Invalid transitions are rejected.
func (o *Order) Transition(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidTransition
	}
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	o.History = append(o.History, StatusChange{Status: next, At: now})
	o.UpdatedAt = now
	return nil
}

// NeedsInvoice reports whether invoice generation should run for the
// order's current state: a fresh pending order or a confirmed one, and
// only when no invoice exists yet.
func (o *Order) NeedsInvoice() bool {
	if o.InvoiceURL != nil && *o.InvoiceURL != "" {
		return false
	}
	return o.Status == StatusPending || o.Status == StatusConfirmed
}
