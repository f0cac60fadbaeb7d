package cart

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
)

// OfferLine is a snapshotted offer in a cart. Totals are for the whole
// line (quantity units); Items is the product breakdown frozen when the
// line was added, so checkout can copy it onto the order for invoicing.
type OfferLine struct {
	OfferID              uuid.UUID           `json:"offerId"`
	Name                 string              `json:"name"`
	Quantity             int                 `json:"quantity"`
	DiscountedTotalCents int64               `json:"discountedTotalCents"`
	OriginalTotalCents   int64               `json:"originalTotalCents"`
	Items                []catalog.OfferItem `json:"items"`
	Version              int                 `json:"version"`
}

func (l OfferLine) SavingsCents() int64 {
	return l.OriginalTotalCents - l.DiscountedTotalCents
}

// UnitPriceCents is the per-unit price implied by the snapshot.
func (l OfferLine) UnitPriceCents() int64 {
	if l.Quantity <= 0 {
		return 0
	}
	return l.DiscountedTotalCents / int64(l.Quantity)
}

type ProductLine struct {
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	TotalCents     int64     `json:"totalCents"`
}

// Cart is a user's mutable pre-checkout selection. There is exactly one
// cart per user and its identifier is the user's.
type Cart struct {
	UserID          uuid.UUID
	OfferLines      []OfferLine
	ProductLines    []ProductLine
	SubtotalCents   int64
	SavingsCents    int64
	TotalCents      int64
	HasInvalidItems bool
	InvalidOfferIDs []uuid.UUID
	UpdatedAt       time.Time
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID}
}

func (c *Cart) IsEmpty() bool {
	return len(c.OfferLines) == 0 && len(c.ProductLines) == 0
}

// Recalculate rebuilds the aggregates from the line items. Every mutation
// must call this; aggregates are never patched incrementally.
func (c *Cart) Recalculate() {
	var subtotal, savings int64
	for _, l := range c.OfferLines {
		subtotal += l.DiscountedTotalCents
		savings += l.SavingsCents()
	}
	for _, l := range c.ProductLines {
		subtotal += l.TotalCents
	}
	c.SubtotalCents = subtotal
	c.SavingsCents = savings
	c.TotalCents = subtotal
}

// PutOfferLine inserts or replaces the line for the offer and recalculates.
func (c *Cart) PutOfferLine(line OfferLine) {
	idx := slices.IndexFunc(c.OfferLines, func(l OfferLine) bool { return l.OfferID == line.OfferID })
	if idx >= 0 {
		c.OfferLines[idx] = line
	} else {
		c.OfferLines = append(c.OfferLines, line)
	}
	c.Recalculate()
}

func (c *Cart) PutProductLine(line ProductLine) {
	idx := slices.IndexFunc(c.ProductLines, func(l ProductLine) bool { return l.ProductID == line.ProductID })
	if idx >= 0 {
		c.ProductLines[idx] = line
	} else {
		c.ProductLines = append(c.ProductLines, line)
	}
	c.Recalculate()
}

func (c *Cart) RemoveOfferLine(offerID uuid.UUID) {
	c.OfferLines = slices.DeleteFunc(c.OfferLines, func(l OfferLine) bool { return l.OfferID == offerID })
	c.InvalidOfferIDs = slices.DeleteFunc(c.InvalidOfferIDs, func(id uuid.UUID) bool { return id == offerID })
	c.HasInvalidItems = len(c.InvalidOfferIDs) > 0
	c.Recalculate()
}

func (c *Cart) RemoveProductLine(productID uuid.UUID) {
	c.ProductLines = slices.DeleteFunc(c.ProductLines, func(l ProductLine) bool { return l.ProductID == productID })
	c.Recalculate()
}

// Clear empties the cart in place. Used at checkout inside the same
// transaction that creates the order.
func (c *Cart) Clear() {
	c.OfferLines = nil
	c.ProductLines = nil
	c.SubtotalCents = 0
	c.SavingsCents = 0
	c.TotalCents = 0
	c.HasInvalidItems = false
	c.InvalidOfferIDs = nil
}

// FlagInvalidOffer records the offer as stale. The union is idempotent;
// repeated flagging never duplicates the id.
func (c *Cart) FlagInvalidOffer(offerID uuid.UUID) {
	if !slices.Contains(c.InvalidOfferIDs, offerID) {
		c.InvalidOfferIDs = append(c.InvalidOfferIDs, offerID)
	}
	c.HasInvalidItems = true
}

// ReferencesOffer reports whether any offer line points at the offer.
func (c *Cart) ReferencesOffer(offerID uuid.UUID) bool {
	return slices.ContainsFunc(c.OfferLines, func(l OfferLine) bool { return l.OfferID == offerID })
}
