package catalog

import (
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/pkg/errs"
)

var (
	ErrNoOfferItems      = errs.New("offer must contain at least one item")
	ErrTotalsMismatch    = errs.New("offer totals do not match the sum of its items")
	ErrInvalidStatus     = errs.New("invalid offer status")
	ErrInvalidItemPrices = errs.New("discounted item price exceeds base price or is negative")
)

type OfferStatus string

const (
	OfferDraft    OfferStatus = "draft"
	OfferActive   OfferStatus = "active"
	OfferInactive OfferStatus = "inactive"
)

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferDraft, OfferActive, OfferInactive:
		return true
	default:
		return false
	}
}

// OfferItem is one product line inside a bundle, with the price it is
// sold at within the bundle. Name and base price are denormalized from
// the product at the time the offer is written.
type OfferItem struct {
	ProductID            uuid.UUID `json:"productId"`
	Name                 string    `json:"name"`
	BasePriceCents       int64     `json:"basePriceCents"`
	DiscountedPriceCents int64     `json:"discountedPriceCents"`
}

func (i OfferItem) DiscountCents() int64 {
	return i.BasePriceCents - i.DiscountedPriceCents
}

func (i OfferItem) DiscountPercent() float64 {
	if i.BasePriceCents == 0 {
		return 0
	}
	return float64(i.DiscountCents()) / float64(i.BasePriceCents) * 100
}

// Offer is a bundle of products sold together at an aggregate discount.
// Aggregate totals are fixed at write time, never re-derived on read.
type Offer struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Items                []OfferItem
	OriginalTotalCents   int64
	DiscountedTotalCents int64
	SavingsCents         int64
	MinQuantity          int
	MaxQuantity          int
	ValidFrom            *time.Time
	ValidUntil           *time.Time
	Status               OfferStatus
	PublishedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate enforces the write-time invariants: totals must equal the sum
// of the item prices, and the quantity range must be sane.
func (o *Offer) Validate() error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if len(o.Items) == 0 {
		return ErrNoOfferItems
	}
	if !o.Status.IsValid() {
		return ErrInvalidStatus
	}
	if o.MinQuantity < 1 || o.MaxQuantity < o.MinQuantity {
		return ErrInvalidQuantityRange
	}

	var original, discounted int64
	for _, item := range o.Items {
		if item.DiscountedPriceCents < 0 || item.DiscountedPriceCents > item.BasePriceCents {
			return ErrInvalidItemPrices
		}
		original += item.BasePriceCents
		discounted += item.DiscountedPriceCents
	}
	if original != o.OriginalTotalCents || discounted != o.DiscountedTotalCents {
		return ErrTotalsMismatch
	}
	if o.SavingsCents != original-discounted {
		return ErrTotalsMismatch
	}
	return nil
}

func (o *Offer) IsActive() bool {
	return o.Status == OfferActive
}

// WithinValidityWindow checks the optional start/end instants against now.
// An unset bound does not constrain.
func (o *Offer) WithinValidityWindow(now time.Time) bool {
	if o.ValidFrom != nil && now.Before(*o.ValidFrom) {
		return false
	}
	if o.ValidUntil != nil && now.After(*o.ValidUntil) {
		return false
	}
	return true
}
