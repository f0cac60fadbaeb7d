package request

import "github.com/google/uuid"

type OfferItemRef struct {
	OfferID  uuid.UUID `json:"offerId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

type ProductItemRef struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

type ValidateCartRequest struct {
	Offers   []OfferItemRef   `json:"offers"`
	Products []ProductItemRef `json:"products"`
}

type PutOfferLineRequest struct {
	OfferID  uuid.UUID `json:"offerId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

type PutProductLineRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}
