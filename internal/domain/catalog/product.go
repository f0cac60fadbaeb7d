package catalog

import (
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/pkg/errs"
)

var (
	ErrInvalidPrice         = errs.New("price must be a non-negative amount of cents")
	ErrInvalidQuantityRange = errs.New("min quantity must be positive and not exceed max quantity")
	ErrEmptyName            = errs.New("name must not be empty")
)

// Product is a sellable unit. Prices are integer minor-currency units
// (cents); products are never deleted, only toggled inactive.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Tags        []string
	InStock     bool
	MinQuantity int
	MaxQuantity int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.PriceCents < 0 {
		return ErrInvalidPrice
	}
	if p.MinQuantity < 1 || p.MaxQuantity < p.MinQuantity {
		return ErrInvalidQuantityRange
	}
	return nil
}

// Purchasable reports whether the product can be added to an order right now.
func (p *Product) Purchasable() bool {
	return p.Active && p.InStock
}
