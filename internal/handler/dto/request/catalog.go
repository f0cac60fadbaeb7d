package request

import (
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
)

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price" binding:"min=0"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	InStock     bool     `json:"inStock"`
	MinQuantity int      `json:"minQuantity" binding:"required,min=1"`
	MaxQuantity int      `json:"maxQuantity" binding:"required,min=1"`
	Active      bool     `json:"active"`
}

func (r ProductRequest) ToDomain(id uuid.UUID) *catalog.Product {
	return &catalog.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.Price,
		Category:    r.Category,
		Tags:        r.Tags,
		InStock:     r.InStock,
		MinQuantity: r.MinQuantity,
		MaxQuantity: r.MaxQuantity,
		Active:      r.Active,
	}
}

type OfferItemRequest struct {
	ProductID       uuid.UUID `json:"productId" binding:"required"`
	Name            string    `json:"name" binding:"required"`
	BasePrice       int64     `json:"basePrice" binding:"min=0"`
	DiscountedPrice int64     `json:"discountedPrice" binding:"min=0"`
}

type OfferRequest struct {
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description,omitempty"`
	Items           []OfferItemRequest `json:"items" binding:"required,min=1"`
	OriginalTotal   int64              `json:"originalTotal"`
	DiscountedTotal int64              `json:"discountedTotal"`
	Savings         int64              `json:"savings"`
	MinQuantity     int                `json:"minQuantity" binding:"required,min=1"`
	MaxQuantity     int                `json:"maxQuantity" binding:"required,min=1"`
	ValidFrom       *time.Time         `json:"validFrom,omitempty"`
	ValidUntil      *time.Time         `json:"validUntil,omitempty"`
	Status          string             `json:"status" binding:"required,oneof=draft active inactive"`
}

func (r OfferRequest) ToDomain(id uuid.UUID) *catalog.Offer {
	items := make([]catalog.OfferItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = catalog.OfferItem{
			ProductID:            it.ProductID,
			Name:                 it.Name,
			BasePriceCents:       it.BasePrice,
			DiscountedPriceCents: it.DiscountedPrice,
		}
	}
	return &catalog.Offer{
		ID:                   id,
		Name:                 r.Name,
		Description:          r.Description,
		Items:                items,
		OriginalTotalCents:   r.OriginalTotal,
		DiscountedTotalCents: r.DiscountedTotal,
		SavingsCents:         r.Savings,
		MinQuantity:          r.MinQuantity,
		MaxQuantity:          r.MaxQuantity,
		ValidFrom:            r.ValidFrom,
		ValidUntil:           r.ValidUntil,
		Status:               catalog.OfferStatus(r.Status),
	}
}
