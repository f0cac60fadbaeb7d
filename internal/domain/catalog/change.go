package catalog

import (
	"slices"

	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeCreated     ChangeKind = "created"
	ChangeDeleted     ChangeKind = "deleted"
	ChangeDeactivated ChangeKind = "deactivated"
	ChangeSignificant ChangeKind = "significant_update"
	ChangeMinor       ChangeKind = "minor_update"
)

// Invalidates reports whether carts referencing the offer must be flagged
// stale. A freshly created offer cannot be in anyone's cart; a minor edit
// (description, name) leaves cart snapshots accurate.
func (k ChangeKind) Invalidates() bool {
	switch k {
	case ChangeDeleted, ChangeDeactivated, ChangeSignificant:
		return true
	default:
		return false
	}
}

// OfferChange carries the before/after snapshots of one offer write.
// Either side may be nil (create and delete respectively), never both.
type OfferChange struct {
	Previous *Offer
	Current  *Offer
}

func (c OfferChange) OfferID() uuid.UUID {
	if c.Current != nil {
		return c.Current.ID
	}
	if c.Previous != nil {
		return c.Previous.ID
	}
	return uuid.Nil
}

// Classify applies the first matching rule:
// created, deleted, deactivated (active -> non-active), significant update
// (items by value, either total, or a quantity bound changed), minor update.
func (c OfferChange) Classify() ChangeKind {
	switch {
	case c.Previous == nil && c.Current == nil:
		return ChangeMinor
	case c.Previous == nil:
		return ChangeCreated
	case c.Current == nil:
		return ChangeDeleted
	}

	prev, cur := c.Previous, c.Current
	if prev.IsActive() && !cur.IsActive() {
		return ChangeDeactivated
	}

	if !slices.Equal(prev.Items, cur.Items) ||
		prev.DiscountedTotalCents != cur.DiscountedTotalCents ||
		prev.OriginalTotalCents != cur.OriginalTotalCents ||
		prev.MinQuantity != cur.MinQuantity ||
		prev.MaxQuantity != cur.MaxQuantity {
		return ChangeSignificant
	}

	return ChangeMinor
}
