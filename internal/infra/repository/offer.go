package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

const offerColumns = `id, name, description, items, original_total_cents, discounted_total_cents,
	savings_cents, min_quantity, max_quantity, valid_from, valid_until, status, published_at,
	created_at, updated_at`

func (r *OfferRepository) Save(ctx context.Context, dbtx db.DBTX, o *catalog.Offer) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return infra.WrapRepoErr("failed to encode offer items", err)
	}

	_, err = dbtx.Exec(ctx, `
		INSERT INTO offers (id, name, description, items, original_total_cents, discounted_total_cents,
			savings_cents, min_quantity, max_quantity, valid_from, valid_until, status, published_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			items = EXCLUDED.items,
			original_total_cents = EXCLUDED.original_total_cents,
			discounted_total_cents = EXCLUDED.discounted_total_cents,
			savings_cents = EXCLUDED.savings_cents,
			min_quantity = EXCLUDED.min_quantity,
			max_quantity = EXCLUDED.max_quantity,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			status = EXCLUDED.status,
			published_at = EXCLUDED.published_at,
			updated_at = now()`,
		o.ID, o.Name, o.Description, items, o.OriginalTotalCents, o.DiscountedTotalCents,
		o.SavingsCents, o.MinQuantity, o.MaxQuantity, o.ValidFrom, o.ValidUntil, o.Status, o.PublishedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to save offer", err)
	}
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("offer not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*catalog.Offer, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer", err)
	}
	return o, nil
}

// FindByIDs loads the referenced offers; ids absent from the result were
// not found, which the validator treats as unavailable.
func (r *OfferRepository) FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Offer, error) {
	result := make(map[uuid.UUID]*catalog.Offer, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := dbtx.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load offers", err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		result[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return result, nil
}

func (r *OfferRepository) ListActive(ctx context.Context, dbtx db.DBTX) ([]*catalog.Offer, error) {
	rows, err := dbtx.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE status = $1 ORDER BY published_at DESC NULLS LAST`, catalog.OfferActive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offers", err)
	}
	defer rows.Close()

	var offers []*catalog.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offers", err)
	}
	return offers, nil
}

func scanOffer(row pgx.Row) (*catalog.Offer, error) {
	var o catalog.Offer
	var items []byte
	err := row.Scan(&o.ID, &o.Name, &o.Description, &items, &o.OriginalTotalCents,
		&o.DiscountedTotalCents, &o.SavingsCents, &o.MinQuantity, &o.MaxQuantity,
		&o.ValidFrom, &o.ValidUntil, &o.Status, &o.PublishedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}
