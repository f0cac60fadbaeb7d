//go:build unit

package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocery-api/internal/domain/order"
)

func TestDeliveryFeeCents(t *testing.T) {
	tests := []struct {
		name     string
		method   order.FulfillmentMethod
		subtotal int64
		want     int64
	}{
		{name: "pickup is always free", method: order.MethodPickup, subtotal: 100, want: 0},
		{name: "delivery below threshold pays the flat fee", method: order.MethodDelivery, subtotal: 4999, want: 599},
		{name: "delivery at threshold is free", method: order.MethodDelivery, subtotal: 5000, want: 0},
		{name: "delivery above threshold is free", method: order.MethodDelivery, subtotal: 12000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.DeliveryFeeCents(tt.method, tt.subtotal))
		})
	}
}

func TestTaxCents_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		base int64
		want int64
	}{
		{base: 1000, want: 100},
		{base: 1004, want: 100},  // 100.4 rounds down
		{base: 1005, want: 101},  // 100.5 rounds up
		{base: 1006, want: 101},  // 100.6 rounds up
		{base: 1, want: 0},       // 0.1 rounds down
		{base: 5, want: 1},       // 0.5 rounds up
		{base: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, order.TaxCents(tt.base), "base %d", tt.base)
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("delivery under the free threshold", func(t *testing.T) {
		totals := order.ComputeTotals(2350, 200, order.MethodDelivery)

		assert.Equal(t, int64(2350), totals.SubtotalCents)
		assert.Equal(t, int64(200), totals.SavingsCents)
		assert.Equal(t, int64(599), totals.DeliveryFeeCents)
		assert.Equal(t, int64(295), totals.TaxCents) // 10% of 2949, half up
		assert.Equal(t, int64(3244), totals.TotalCents)
	})

	t.Run("pickup has no fee and taxes the subtotal only", func(t *testing.T) {
		totals := order.ComputeTotals(2350, 0, order.MethodPickup)

		assert.Equal(t, int64(0), totals.DeliveryFeeCents)
		assert.Equal(t, int64(235), totals.TaxCents)
		assert.Equal(t, int64(2585), totals.TotalCents)
	})
}
