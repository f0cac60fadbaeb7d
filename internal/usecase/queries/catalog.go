package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/catalog"
)

type OfferView struct {
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

type ProductView struct {
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

type CatalogQueries interface {
	GetOffer(ctx context.Context, id uuid.UUID) (*OfferView, error)
	ListActiveOffers(ctx context.Context) ([]*OfferView, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListActiveProducts(ctx context.Context) ([]*ProductView, error)
}

type CatalogViewRepo interface {
	FindOfferByID(ctx context.Context, id uuid.UUID) (*OfferView, error)
	FindActiveOffers(ctx context.Context) ([]*OfferView, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindActiveProducts(ctx context.Context) ([]*ProductView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) GetOffer(ctx context.Context, id uuid.UUID) (*OfferView, error) {
	return q.repo.FindOfferByID(ctx, id)
}

func (q *catalogQueriesImpl) ListActiveOffers(ctx context.Context) ([]*OfferView, error) {
	return q.repo.FindActiveOffers(ctx)
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.repo.FindProductByID(ctx, id)
}

func (q *catalogQueriesImpl) ListActiveProducts(ctx context.Context) ([]*ProductView, error) {
	return q.repo.FindActiveProducts(ctx)
}
