//go:build unit

package cart_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"grocery-api/internal/domain/cart"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreFields(cart.Cart{}, "UpdatedAt"),
	cmpopts.EquateEmpty(),
}

func TestCart_Recalculate(t *testing.T) {
	c := cart.NewCart(uuid.New())
	c.PutOfferLine(cart.OfferLine{
		OfferID:              uuid.New(),
		Quantity:             2,
		DiscountedTotalCents: 1000,
		OriginalTotalCents:   1200,
	})
	c.PutProductLine(cart.ProductLine{
		ProductID:      uuid.New(),
		Quantity:       3,
		UnitPriceCents: 450,
		TotalCents:     1350,
	})

	assert.Equal(t, int64(2350), c.SubtotalCents)
	assert.Equal(t, int64(200), c.SavingsCents)
	assert.Equal(t, int64(2350), c.TotalCents)
}

func TestCart_PutOfferLineReplacesExisting(t *testing.T) {
	offerID := uuid.New()
	c := cart.NewCart(uuid.New())

	c.PutOfferLine(cart.OfferLine{OfferID: offerID, Quantity: 1, DiscountedTotalCents: 500, OriginalTotalCents: 600})
	c.PutOfferLine(cart.OfferLine{OfferID: offerID, Quantity: 3, DiscountedTotalCents: 1500, OriginalTotalCents: 1800})

	assert.Len(t, c.OfferLines, 1)
	assert.Equal(t, 3, c.OfferLines[0].Quantity)
	assert.Equal(t, int64(1500), c.SubtotalCents)
}

func TestCart_RemoveOfferLineDropsInvalidFlag(t *testing.T) {
	offerID := uuid.New()
	c := cart.NewCart(uuid.New())
	c.PutOfferLine(cart.OfferLine{OfferID: offerID, Quantity: 1, DiscountedTotalCents: 500, OriginalTotalCents: 600})
	c.FlagInvalidOffer(offerID)

	c.RemoveOfferLine(offerID)

	assert.True(t, c.IsEmpty())
	assert.False(t, c.HasInvalidItems)
	assert.Empty(t, c.InvalidOfferIDs)
	assert.Equal(t, int64(0), c.TotalCents)
}

func TestCart_FlagInvalidOfferIsIdempotent(t *testing.T) {
	offerID := uuid.New()
	c := cart.NewCart(uuid.New())

	c.FlagInvalidOffer(offerID)
	c.FlagInvalidOffer(offerID)

	assert.True(t, c.HasInvalidItems)
	assert.Equal(t, []uuid.UUID{offerID}, c.InvalidOfferIDs)
}

func TestCart_Clear(t *testing.T) {
	c := cart.NewCart(uuid.New())
	c.PutOfferLine(cart.OfferLine{OfferID: uuid.New(), Quantity: 1, DiscountedTotalCents: 500, OriginalTotalCents: 600})
	c.FlagInvalidOffer(uuid.New())

	c.Clear()

	assert.True(t, c.IsEmpty())
	if diff := cmp.Diff(cart.NewCart(c.UserID), c, cmpOpts...); diff != "" {
		t.Errorf("cleared cart mismatch (-want +got):\n%s", diff)
	}
}

func TestOfferLine_UnitPriceCents(t *testing.T) {
	line := cart.OfferLine{Quantity: 4, DiscountedTotalCents: 2000}
	assert.Equal(t, int64(500), line.UnitPriceCents())

	assert.Equal(t, int64(0), cart.OfferLine{}.UnitPriceCents())
}
