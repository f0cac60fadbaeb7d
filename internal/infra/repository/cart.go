package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

const cartColumns = `user_id, offer_lines, product_lines, subtotal_cents, savings_cents,
	total_cents, has_invalid_items, invalid_offer_ids, updated_at`

func (r *CartRepository) FindByUserID(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (*cart.Cart, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
	c, err := scanCart(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}
	return c, nil
}

// Save upserts the whole cart document. Carts are created lazily on the
// first add-to-cart, so an upsert is the natural write.
func (r *CartRepository) Save(ctx context.Context, dbtx db.DBTX, c *cart.Cart) error {
	offerLines, err := json.Marshal(c.OfferLines)
	if err != nil {
		return infra.WrapRepoErr("failed to encode offer lines", err)
	}
	productLines, err := json.Marshal(c.ProductLines)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product lines", err)
	}

	_, err = dbtx.Exec(ctx, `
		INSERT INTO carts (user_id, offer_lines, product_lines, subtotal_cents, savings_cents,
			total_cents, has_invalid_items, invalid_offer_ids, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id) DO UPDATE SET
			offer_lines = EXCLUDED.offer_lines,
			product_lines = EXCLUDED.product_lines,
			subtotal_cents = EXCLUDED.subtotal_cents,
			savings_cents = EXCLUDED.savings_cents,
			total_cents = EXCLUDED.total_cents,
			has_invalid_items = EXCLUDED.has_invalid_items,
			invalid_offer_ids = EXCLUDED.invalid_offer_ids,
			updated_at = now()`,
		c.UserID, offerLines, productLines, c.SubtotalCents, c.SavingsCents,
		c.TotalCents, c.HasInvalidItems, c.InvalidOfferIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to save cart", err)
	}
	return nil
}

// Clear resets the cart's lines, aggregates and invalid flags in place.
// Runs inside the order-creation transaction.
func (r *CartRepository) Clear(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE carts SET
			offer_lines = '[]', product_lines = '[]',
			subtotal_cents = 0, savings_cents = 0, total_cents = 0,
			has_invalid_items = false, invalid_offer_ids = '{}',
			updated_at = now()
		WHERE user_id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}

// CartRef is the slice of a cart the invalidation scan needs.
type CartRef struct {
	UserID     uuid.UUID
	OfferLines []cart.OfferLine
}

// ScanAll reads every cart's offer lines. Deliberately a full collection
// scan; there is no index from offer id to referencing carts.
func (r *CartRepository) ScanAll(ctx context.Context, dbtx db.DBTX) ([]CartRef, error) {
	rows, err := dbtx.Query(ctx, `SELECT user_id, offer_lines FROM carts`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan carts", err)
	}
	defer rows.Close()

	var refs []CartRef
	for rows.Next() {
		var ref CartRef
		var offerLines []byte
		if err := rows.Scan(&ref.UserID, &offerLines); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart row", err)
		}
		if err := json.Unmarshal(offerLines, &ref.OfferLines); err != nil {
			return nil, infra.WrapRepoErr("failed to decode offer lines", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate carts", err)
	}
	return refs, nil
}

// FlagInvalid marks one batch of carts as holding a stale offer. The
// array union is idempotent: an id already present is not appended
// again, so the reactor may run twice over the same carts safely.
func (r *CartRepository) FlagInvalid(ctx context.Context, dbtx db.DBTX, userIDs []uuid.UUID, offerID uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, userID := range userIDs {
		batch.Queue(`
			UPDATE carts SET
				invalid_offer_ids = CASE
					WHEN $2 = ANY(invalid_offer_ids) THEN invalid_offer_ids
					ELSE array_append(invalid_offer_ids, $2)
				END,
				has_invalid_items = true,
				updated_at = now()
			WHERE user_id = $1`, userID, offerID)
	}

	results := dbtx.SendBatch(ctx, batch)
	defer results.Close()

	for range userIDs {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to flag cart invalid", err)
		}
	}
	return nil
}

func scanCart(row pgx.Row) (*cart.Cart, error) {
	var c cart.Cart
	var offerLines, productLines []byte
	err := row.Scan(&c.UserID, &offerLines, &productLines, &c.SubtotalCents, &c.SavingsCents,
		&c.TotalCents, &c.HasInvalidItems, &c.InvalidOfferIDs, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(offerLines, &c.OfferLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productLines, &c.ProductLines); err != nil {
		return nil, err
	}
	return &c, nil
}
