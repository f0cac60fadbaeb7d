package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
)

type CartView struct {
	UserID          uuid.UUID          `json:"userId"`
	OfferLines      []cart.OfferLine   `json:"offers"`
	ProductLines    []cart.ProductLine `json:"products"`
	SubtotalCents   int                `json:"subtotal"`
	SavingsCents    int                `json:"savings"`
	TotalCents      int                `json:"total"`
	HasInvalidItems bool               `json:"hasInvalidItems"`
	InvalidOfferIDs []uuid.UUID        `json:"invalidOfferIds,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type CartQueries interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type CartViewRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	repo CartViewRepo
}

func NewCartQueries(repo CartViewRepo) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

func (q *cartQueriesImpl) GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	return q.repo.FindByUserID(ctx, userID)
}
