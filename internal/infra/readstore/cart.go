package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/usecase/queries"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

// FindByUserID returns the user's cart, or an empty view when the user
// has never put anything in one.
func (r *CartReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.CartView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT user_id, offer_lines, product_lines, subtotal_cents, savings_cents,
			total_cents, has_invalid_items, invalid_offer_ids, updated_at
		FROM carts WHERE user_id = $1`, userID)

	var v queries.CartView
	var offerLines, productLines []byte

	err := row.Scan(&v.UserID, &offerLines, &productLines, &v.SubtotalCents,
		&v.SavingsCents, &v.TotalCents, &v.HasInvalidItems, &v.InvalidOfferIDs, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &queries.CartView{UserID: userID}, nil
		}
		return nil, infra.WrapRepoErr("failed to read cart view", err)
	}

	if err := json.Unmarshal(offerLines, &v.OfferLines); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart offer lines", err)
	}
	if err := json.Unmarshal(productLines, &v.ProductLines); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart product lines", err)
	}
	return &v, nil
}
