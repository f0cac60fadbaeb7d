package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/domain/user"
	"grocery-api/internal/pkg/errs"
)

var ErrOrderAccessDenied = errs.New("order does not belong to caller")

// Read models (DTO for read side)
type OrderView struct {
	ID                uuid.UUID              `json:"id"`
	Number            string                 `json:"orderNumber"`
	UserID            uuid.UUID              `json:"userId"`
	CustomerName      string                 `json:"customerName"`
	CustomerPhone     string                 `json:"customerPhone"`
	OfferLines        []cart.OfferLine       `json:"offers"`
	ProductLines      []cart.ProductLine     `json:"products"`
	SubtotalCents     int                    `json:"subtotal"`
	SavingsCents      int                    `json:"savings"`
	DeliveryFeeCents  int                    `json:"deliveryFee"`
	TaxCents          int                    `json:"tax"`
	TotalCents        int                    `json:"total"`
	FulfillmentMethod string                 `json:"fulfillmentMethod"`
	Delivery          *order.DeliveryDetails `json:"deliveryDetails,omitempty"`
	Pickup            *order.PickupDetails   `json:"pickupDetails,omitempty"`
	Status            string                 `json:"status"`
	History           []order.StatusChange   `json:"statusHistory"`
	EstimatedDelivery *time.Time             `json:"estimatedDelivery,omitempty"`
	InvoiceURL        *string                `json:"invoiceUrl,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	Number     string    `json:"orderNumber"`
	Status     string    `json:"status"`
	TotalCents int       `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*OrderView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && !actorRole.IsStaff() {
		return nil, ErrOrderAccessDenied
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}
