package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/usecase/queries"
)

type CartResponse struct {
	UserID          uuid.UUID          `json:"userId"`
	OfferLines      []cart.OfferLine   `json:"offers"`
	ProductLines    []cart.ProductLine `json:"products"`
	SubtotalCents   int64              `json:"subtotal"`
	SavingsCents    int64              `json:"savings"`
	TotalCents      int64              `json:"total"`
	HasInvalidItems bool               `json:"hasInvalidItems"`
	InvalidOfferIDs []uuid.UUID        `json:"invalidOfferIds,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type CartValidationResponse struct {
	IsValid bool                   `json:"isValid"`
	Errors  []cart.ValidationError `json:"errors,omitempty"`
}

func FromCart(c *cart.Cart) *CartResponse {
	var resp CartResponse
	_ = copier.Copy(&resp, c)
	return &resp
}

func FromCartView(v *queries.CartView) *CartResponse {
	var resp CartResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromValidationResult(r *cart.ValidationResult) *CartValidationResponse {
	return &CartValidationResponse{
		IsValid: r.IsValid,
		Errors:  r.Errors,
	}
}
