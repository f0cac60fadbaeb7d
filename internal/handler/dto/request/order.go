package request

import (
	"time"

	"grocery-api/internal/domain/order"
)

type DeliveryDetailsRequest struct {
	Address      string `json:"address" binding:"required"`
	City         string `json:"city" binding:"required"`
	PostalCode   string `json:"postalCode" binding:"required"`
	Instructions string `json:"instructions,omitempty"`
}

type PickupDetailsRequest struct {
	PickupTime time.Time `json:"pickupTime" binding:"required"`
}

type CreateOrderRequest struct {
	FulfillmentMethod string                  `json:"fulfillmentMethod" binding:"required,oneof=delivery pickup"`
	DeliveryDetails   *DeliveryDetailsRequest `json:"deliveryDetails,omitempty"`
	PickupDetails     *PickupDetailsRequest   `json:"pickupDetails,omitempty"`
}

func (r CreateOrderRequest) ToFulfillment() order.Fulfillment {
	f := order.Fulfillment{Method: order.FulfillmentMethod(r.FulfillmentMethod)}
	if r.DeliveryDetails != nil {
		f.Delivery = &order.DeliveryDetails{
			Address:      r.DeliveryDetails.Address,
			City:         r.DeliveryDetails.City,
			PostalCode:   r.DeliveryDetails.PostalCode,
			Instructions: r.DeliveryDetails.Instructions,
		}
	}
	if r.PickupDetails != nil {
		f.Pickup = &order.PickupDetails{
			PickupAt: r.PickupDetails.PickupTime,
		}
	}
	return f
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
