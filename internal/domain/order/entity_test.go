//go:build unit

package order_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/order"
)

var checkoutAt = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func filledCart() *cart.Cart {
	c := cart.NewCart(uuid.New())
	c.PutOfferLine(cart.OfferLine{
		OfferID:              uuid.New(),
		Name:                 "Breakfast Bundle",
		Quantity:             2,
		DiscountedTotalCents: 1000,
		OriginalTotalCents:   1200,
	})
	c.PutProductLine(cart.ProductLine{
		ProductID:      uuid.New(),
		Name:           "Orange Juice",
		Quantity:       3,
		UnitPriceCents: 450,
		TotalCents:     1350,
	})
	return c
}

func delivery() order.Fulfillment {
	return order.Fulfillment{
		Method: order.MethodDelivery,
		Delivery: &order.DeliveryDetails{
			Address:    "12 Main St",
			City:       "Springfield",
			PostalCode: "12345",
		},
	}
}

func pickup(at time.Time) order.Fulfillment {
	return order.Fulfillment{
		Method: order.MethodPickup,
		Pickup: &order.PickupDetails{PickupAt: at},
	}
}

func TestNew(t *testing.T) {
	customer := order.Customer{UserID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Phone: "+15550100123"}

	t.Run("delivery order snapshots the cart", func(t *testing.T) {
		c := filledCart()

		o, err := order.New("ORD-20260315-0001", customer, c, delivery(), checkoutAt)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, c.SubtotalCents, o.Totals.SubtotalCents)
		assert.Len(t, o.OfferLines, 1)
		assert.Len(t, o.ProductLines, 1)
		require.Len(t, o.History, 1)
		assert.Equal(t, order.StatusPending, o.History[0].Status)
		require.NotNil(t, o.EstimatedDelivery)
		assert.Equal(t, checkoutAt.Add(2*time.Hour), *o.EstimatedDelivery)
	})

	t.Run("pickup order has no delivery estimate", func(t *testing.T) {
		o, err := order.New("ORD-20260315-0002", customer, filledCart(), pickup(checkoutAt.Add(time.Hour)), checkoutAt)
		require.NoError(t, err)

		assert.Nil(t, o.EstimatedDelivery)
		assert.Equal(t, int64(0), o.Totals.DeliveryFeeCents)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := order.New("ORD-20260315-0003", customer, cart.NewCart(uuid.New()), delivery(), checkoutAt)
		assert.ErrorIs(t, err, order.ErrEmptyCart)
	})

	t.Run("delivery without details is rejected", func(t *testing.T) {
		_, err := order.New("ORD-20260315-0004", customer, filledCart(), order.Fulfillment{Method: order.MethodDelivery}, checkoutAt)
		assert.ErrorIs(t, err, order.ErrMissingDeliveryDetails)
	})

	t.Run("pickup in the past is rejected", func(t *testing.T) {
		_, err := order.New("ORD-20260315-0005", customer, filledCart(), pickup(checkoutAt.Add(-time.Minute)), checkoutAt)
		assert.ErrorIs(t, err, order.ErrPickupNotInFuture)
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		_, err := order.New("ORD-20260315-0006", customer, filledCart(), order.Fulfillment{Method: "courier"}, checkoutAt)
		assert.ErrorIs(t, err, order.ErrInvalidFulfillment)
	})

	t.Run("cart mutations after checkout do not touch the order", func(t *testing.T) {
		c := filledCart()
		o, err := order.New("ORD-20260315-0007", customer, c, delivery(), checkoutAt)
		require.NoError(t, err)

		c.Clear()

		assert.Len(t, o.OfferLines, 1)
		assert.Len(t, o.ProductLines, 1)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from order.Status
		to   order.Status
		ok   bool
	}{
		{order.StatusPending, order.StatusConfirmed, true},
		{order.StatusConfirmed, order.StatusPreparing, true},
		{order.StatusPreparing, order.StatusOutForDelivery, true},
		{order.StatusPreparing, order.StatusReadyForPickup, true},
		{order.StatusOutForDelivery, order.StatusCompleted, true},
		{order.StatusReadyForPickup, order.StatusCompleted, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusPreparing, order.StatusCancelled, true},
		{order.StatusPending, order.StatusPreparing, false},
		{order.StatusConfirmed, order.StatusPending, false},
		{order.StatusCompleted, order.StatusCancelled, false},
		{order.StatusCancelled, order.StatusConfirmed, false},
		{order.StatusCompleted, order.StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_Transition(t *testing.T) {
	customer := order.Customer{UserID: uuid.New()}
	o, err := order.New("ORD-20260315-0008", customer, filledCart(), delivery(), checkoutAt)
	require.NoError(t, err)

	later := checkoutAt.Add(10 * time.Minute)
	require.NoError(t, o.Transition(order.StatusConfirmed, later))
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Len(t, o.History, 2)
	assert.Equal(t, later, o.UpdatedAt)

	err = o.Transition(order.StatusCompleted, later)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Len(t, o.History, 2)

	err = o.Transition("shipped", later)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestOrder_NeedsInvoice(t *testing.T) {
	customer := order.Customer{UserID: uuid.New()}
	o, err := order.New("ORD-20260315-0009", customer, filledCart(), delivery(), checkoutAt)
	require.NoError(t, err)

	assert.True(t, o.NeedsInvoice())

	url := "https://storage.example/invoices/1.pdf"
	o.InvoiceURL = &url
	assert.False(t, o.NeedsInvoice())

	o.InvoiceURL = nil
	require.NoError(t, o.Transition(order.StatusConfirmed, checkoutAt))
	assert.True(t, o.NeedsInvoice())

	require.NoError(t, o.Transition(order.StatusPreparing, checkoutAt))
	assert.False(t, o.NeedsInvoice())
}

func TestNotificationFor(t *testing.T) {
	n, ok := order.NotificationFor(order.StatusConfirmed)
	require.True(t, ok)
	assert.NotEmpty(t, n.Title)
	assert.NotEmpty(t, n.Body)

	_, ok = order.NotificationFor(order.StatusPending)
	assert.False(t, ok)
}
