package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
)

type ErrorKind string

const (
	KindOfferUnavailable   ErrorKind = "offer_unavailable"
	KindOfferChanged       ErrorKind = "offer_changed"
	KindProductUnavailable ErrorKind = "product_unavailable"
	KindQuantityExceeded   ErrorKind = "quantity_exceeded"
)

// ValidationError describes one failed check against the live catalog.
// MaxAllowed is set only for quantity errors.
type ValidationError struct {
	Kind       ErrorKind `json:"kind"`
	ItemID     uuid.UUID `json:"itemId"`
	Message    string    `json:"message"`
	MaxAllowed *int      `json:"maxAllowed,omitempty"`
}

type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  []ValidationError `json:"errors"`
}

// Catalog is the live state the cart is checked against. Missing map
// entries mean the referenced document does not exist.
type Catalog struct {
	Offers   map[uuid.UUID]*catalog.Offer
	Products map[uuid.UUID]*catalog.Product
}

// Validate runs the checkout-time checks over every line. Side-effect
// free; safe to call repeatedly. Checks for one line short-circuit at
// the first failure for that line, but every line is always examined.
func Validate(c *Cart, cat Catalog, now time.Time) ValidationResult {
	var errors []ValidationError

	for _, line := range c.OfferLines {
		if err := validateOfferLine(line, cat.Offers[line.OfferID], now); err != nil {
			errors = append(errors, *err)
		}
	}
	for _, line := range c.ProductLines {
		if err := validateProductLine(line, cat.Products[line.ProductID]); err != nil {
			errors = append(errors, *err)
		}
	}

	return ValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

func validateOfferLine(line OfferLine, offer *catalog.Offer, now time.Time) *ValidationError {
	if offer == nil {
		return &ValidationError{
			Kind:    KindOfferUnavailable,
			ItemID:  line.OfferID,
			Message: fmt.Sprintf("offer %q is no longer available", line.Name),
		}
	}
	if !offer.IsActive() {
		return &ValidationError{
			Kind:    KindOfferUnavailable,
			ItemID:  line.OfferID,
			Message: fmt.Sprintf("offer %q is not active", offer.Name),
		}
	}
	if !offer.WithinValidityWindow(now) {
		return &ValidationError{
			Kind:    KindOfferUnavailable,
			ItemID:  line.OfferID,
			Message: fmt.Sprintf("offer %q is outside its validity period", offer.Name),
		}
	}
	if line.UnitPriceCents() != offer.DiscountedTotalCents {
		return &ValidationError{
			Kind:    KindOfferChanged,
			ItemID:  line.OfferID,
			Message: fmt.Sprintf("the price of offer %q has changed, please re-add it to your cart", offer.Name),
		}
	}
	if line.Quantity < offer.MinQuantity || line.Quantity > offer.MaxQuantity {
		maxAllowed := offer.MaxQuantity
		return &ValidationError{
			Kind:       KindQuantityExceeded,
			ItemID:     line.OfferID,
			Message:    fmt.Sprintf("quantity for offer %q must be between %d and %d", offer.Name, offer.MinQuantity, offer.MaxQuantity),
			MaxAllowed: &maxAllowed,
		}
	}
	return nil
}

func validateProductLine(line ProductLine, product *catalog.Product) *ValidationError {
	if product == nil {
		return &ValidationError{
			Kind:    KindProductUnavailable,
			ItemID:  line.ProductID,
			Message: fmt.Sprintf("product %q is no longer available", line.Name),
		}
	}
	if !product.Purchasable() {
		return &ValidationError{
			Kind:    KindProductUnavailable,
			ItemID:  line.ProductID,
			Message: fmt.Sprintf("product %q is out of stock or inactive", product.Name),
		}
	}
	if line.Quantity < product.MinQuantity || line.Quantity > product.MaxQuantity {
		maxAllowed := product.MaxQuantity
		return &ValidationError{
			Kind:       KindQuantityExceeded,
			ItemID:     line.ProductID,
			Message:    fmt.Sprintf("quantity for product %q must be between %d and %d", product.Name, product.MinQuantity, product.MaxQuantity),
			MaxAllowed: &maxAllowed,
		}
	}
	return nil
}
