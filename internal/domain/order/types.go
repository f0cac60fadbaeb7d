package order

import "time"

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusReadyForPickup, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo enforces the order lifecycle:
// pending -> confirmed -> preparing -> (out_for_delivery | ready_for_pickup)
// -> completed, with cancellation allowed from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusPreparing
	case StatusPreparing:
		return next == StatusOutForDelivery || next == StatusReadyForPickup
	case StatusOutForDelivery, StatusReadyForPickup:
		return next == StatusCompleted
	default:
		return false
	}
}

type FulfillmentMethod string

const (
	MethodDelivery FulfillmentMethod = "delivery"
	MethodPickup   FulfillmentMethod = "pickup"
)

func (m FulfillmentMethod) IsValid() bool {
	return m == MethodDelivery || m == MethodPickup
}

type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}

type DeliveryDetails struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Instructions string `json:"instructions,omitempty"`
}

type PickupDetails struct {
	PickupAt time.Time `json:"pickupAt"`
}

// StatusNotification is the fixed message sent when an order reaches the
// status; statuses without an entry do not notify.
type StatusNotification struct {
	Title string
	Body  string
}

var statusNotifications = map[Status]StatusNotification{
	StatusConfirmed:      {Title: "Order confirmed", Body: "Your order has been confirmed and will be prepared shortly."},
	StatusPreparing:      {Title: "Order in preparation", Body: "We are packing your groceries now."},
	StatusOutForDelivery: {Title: "Out for delivery", Body: "Your order is on its way."},
	StatusReadyForPickup: {Title: "Ready for pickup", Body: "Your order is ready to be picked up."},
	StatusCompleted:      {Title: "Order completed", Body: "Thank you for shopping with us!"},
	StatusCancelled:      {Title: "Order cancelled", Body: "Your order has been cancelled."},
}

// NotificationFor returns the push message for a status, if any.
func NotificationFor(s Status) (StatusNotification, bool) {
	n, ok := statusNotifications[s]
	return n, ok
}
