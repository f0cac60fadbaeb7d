//go:build unit

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocery-api/internal/domain/catalog"
)

func TestOffer_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Offer)
		errIs  error
	}{
		{
			name:   "valid offer",
			mutate: func(*catalog.Offer) {},
		},
		{
			name:   "empty name",
			mutate: func(o *catalog.Offer) { o.Name = "" },
			errIs:  catalog.ErrEmptyName,
		},
		{
			name:   "no items",
			mutate: func(o *catalog.Offer) { o.Items = nil },
			errIs:  catalog.ErrNoOfferItems,
		},
		{
			name:   "unknown status",
			mutate: func(o *catalog.Offer) { o.Status = "archived" },
			errIs:  catalog.ErrInvalidStatus,
		},
		{
			name:   "zero min quantity",
			mutate: func(o *catalog.Offer) { o.MinQuantity = 0 },
			errIs:  catalog.ErrInvalidQuantityRange,
		},
		{
			name:   "max below min",
			mutate: func(o *catalog.Offer) { o.MaxQuantity = 0 },
			errIs:  catalog.ErrInvalidQuantityRange,
		},
		{
			name:   "discounted item price above base",
			mutate: func(o *catalog.Offer) { o.Items[0].DiscountedPriceCents = 400 },
			errIs:  catalog.ErrInvalidItemPrices,
		},
		{
			name:   "negative discounted item price",
			mutate: func(o *catalog.Offer) { o.Items[0].DiscountedPriceCents = -1 },
			errIs:  catalog.ErrInvalidItemPrices,
		},
		{
			name:   "stated total does not match items",
			mutate: func(o *catalog.Offer) { o.DiscountedTotalCents = 999 },
			errIs:  catalog.ErrTotalsMismatch,
		},
		{
			name:   "stated savings do not match totals",
			mutate: func(o *catalog.Offer) { o.SavingsCents = 1 },
			errIs:  catalog.ErrTotalsMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := bundle()
			tt.mutate(o)

			err := o.Validate()

			if tt.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestOfferItem_Discount(t *testing.T) {
	item := catalog.OfferItem{BasePriceCents: 400, DiscountedPriceCents: 300}
	assert.Equal(t, int64(100), item.DiscountCents())
	assert.InDelta(t, 25.0, item.DiscountPercent(), 0.001)

	free := catalog.OfferItem{}
	assert.Equal(t, float64(0), free.DiscountPercent())
}
