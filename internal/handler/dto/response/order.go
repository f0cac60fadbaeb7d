package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
)

type OrderCreatedResponse struct {
	OrderID           uuid.UUID  `json:"orderId"`
	OrderNumber       string     `json:"orderNumber"`
	TotalCents        int64      `json:"total"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type OrderResponse struct {
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

type OrderListResponse struct {
	ID         uuid.UUID `json:"id"`
	Number     string    `json:"orderNumber"`
	Status     string    `json:"status"`
	TotalCents int       `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderStatusResponse struct {
	ID        uuid.UUID            `json:"id"`
	Number    string               `json:"orderNumber"`
	Status    string               `json:"status"`
	History   []order.StatusChange `json:"statusHistory"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func FromCreateOrderResult(r *commands.CreateOrderResult) *OrderCreatedResponse {
	var resp OrderCreatedResponse
	_ = copier.Copy(&resp, r)
	return &resp
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromOrderListItem(v *queries.OrderListItem) *OrderListResponse {
	var resp OrderListResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromOrder(o *order.Order) *OrderStatusResponse {
	return &OrderStatusResponse{
		ID:        o.ID,
		Number:    o.Number,
		Status:    string(o.Status),
		History:   o.History,
		UpdatedAt: o.UpdatedAt,
	}
}
