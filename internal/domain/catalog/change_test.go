//go:build unit

package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"grocery-api/internal/domain/catalog"
)

func bundle() *catalog.Offer {
	return &catalog.Offer{
		ID:   uuid.MustParse("0c8e6e3a-33d7-4f3b-86a4-0f49a7f34a11"),
		Name: "Breakfast Bundle",
		Items: []catalog.OfferItem{
			{ProductID: uuid.MustParse("71e0617e-9c54-4a4d-9c77-8f0e22d818e5"), Name: "Milk", BasePriceCents: 300, DiscountedPriceCents: 250},
		},
		OriginalTotalCents:   300,
		DiscountedTotalCents: 250,
		SavingsCents:         50,
		MinQuantity:          1,
		MaxQuantity:          5,
		Status:               catalog.OfferActive,
	}
}

func TestOfferChange_Classify(t *testing.T) {
	tests := []struct {
		name            string
		change          func() catalog.OfferChange
		want            catalog.ChangeKind
		wantInvalidates bool
	}{
		{
			name:   "created",
			change: func() catalog.OfferChange { return catalog.OfferChange{Current: bundle()} },
			want:   catalog.ChangeCreated,
		},
		{
			name:            "deleted",
			change:          func() catalog.OfferChange { return catalog.OfferChange{Previous: bundle()} },
			want:            catalog.ChangeDeleted,
			wantInvalidates: true,
		},
		{
			name: "deactivated",
			change: func() catalog.OfferChange {
				cur := bundle()
				cur.Status = catalog.OfferInactive
				return catalog.OfferChange{Previous: bundle(), Current: cur}
			},
			want:            catalog.ChangeDeactivated,
			wantInvalidates: true,
		},
		{
			name: "price change is significant",
			change: func() catalog.OfferChange {
				cur := bundle()
				cur.DiscountedTotalCents = 200
				return catalog.OfferChange{Previous: bundle(), Current: cur}
			},
			want:            catalog.ChangeSignificant,
			wantInvalidates: true,
		},
		{
			name: "item edit is significant",
			change: func() catalog.OfferChange {
				cur := bundle()
				cur.Items[0].DiscountedPriceCents = 240
				return catalog.OfferChange{Previous: bundle(), Current: cur}
			},
			want:            catalog.ChangeSignificant,
			wantInvalidates: true,
		},
		{
			name: "quantity bound change is significant",
			change: func() catalog.OfferChange {
				cur := bundle()
				cur.MaxQuantity = 3
				return catalog.OfferChange{Previous: bundle(), Current: cur}
			},
			want:            catalog.ChangeSignificant,
			wantInvalidates: true,
		},
		{
			name: "description edit is minor",
			change: func() catalog.OfferChange {
				cur := bundle()
				cur.Description = "Now with extra fiber"
				return catalog.OfferChange{Previous: bundle(), Current: cur}
			},
			want: catalog.ChangeMinor,
		},
		{
			name: "activation is minor",
			change: func() catalog.OfferChange {
				prev := bundle()
				prev.Status = catalog.OfferDraft
				return catalog.OfferChange{Previous: prev, Current: bundle()}
			},
			want: catalog.ChangeMinor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := tt.change().Classify()
			assert.Equal(t, tt.want, kind)
			assert.Equal(t, tt.wantInvalidates, kind.Invalidates())
		})
	}
}

func TestOfferChange_OfferID(t *testing.T) {
	o := bundle()
	assert.Equal(t, o.ID, catalog.OfferChange{Current: o}.OfferID())
	assert.Equal(t, o.ID, catalog.OfferChange{Previous: o}.OfferID())
	assert.Equal(t, uuid.Nil, catalog.OfferChange{}.OfferID())
}
