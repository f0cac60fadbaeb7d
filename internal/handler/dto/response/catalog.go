package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/usecase/queries"
)

type OfferResponse struct {
	ID                   uuid.UUID           `json:"id"`
	Name                 string              `json:"name"`
	Description          string              `json:"description,omitempty"`
	Items                []catalog.OfferItem `json:"items"`
	OriginalTotalCents   int64               `json:"originalTotal"`
	DiscountedTotalCents int64               `json:"discountedTotal"`
	SavingsCents         int64               `json:"savings"`
	MinQuantity          int                 `json:"minQuantity"`
	MaxQuantity          int                 `json:"maxQuantity"`
	ValidFrom            *time.Time          `json:"validFrom,omitempty"`
	ValidUntil           *time.Time          `json:"validUntil,omitempty"`
	Status               string              `json:"status"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	InStock     bool      `json:"inStock"`
	MinQuantity int       `json:"minQuantity"`
	MaxQuantity int       `json:"maxQuantity"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromOfferView(v *queries.OfferView) *OfferResponse {
	var resp OfferResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromOffer(o *catalog.Offer) *OfferResponse {
	var resp OfferResponse
	_ = copier.Copy(&resp, o)
	resp.Status = string(o.Status)
	return &resp
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromProduct(p *catalog.Product) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, p)
	return &resp
}
