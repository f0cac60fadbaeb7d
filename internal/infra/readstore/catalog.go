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

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const offerViewColumns = `id, name, description, items, original_total_cents,
	discounted_total_cents, savings_cents, min_quantity, max_quantity,
	valid_from, valid_until, status, created_at, updated_at`

func (r *CatalogReadStore) FindOfferByID(ctx context.Context, id uuid.UUID) (*queries.OfferView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+offerViewColumns+` FROM offers WHERE id = $1`, id)
	view, err := scanOfferView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read offer view", err)
	}
	return view, nil
}

// FindActiveOffers returns active offers currently inside their validity
// window, newest first.
func (r *CatalogReadStore) FindActiveOffers(ctx context.Context) ([]*queries.OfferView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+offerViewColumns+` FROM offers
		WHERE status = 'active'
			AND (valid_from IS NULL OR valid_from <= now())
			AND (valid_until IS NULL OR valid_until >= now())
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active offers", err)
	}
	defer rows.Close()

	var views []*queries.OfferView
	for rows.Next() {
		view, err := scanOfferView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer views", err)
	}
	return views, nil
}

func scanOfferView(row pgx.Row) (*queries.OfferView, error) {
	var v queries.OfferView
	var items []byte

	err := row.Scan(&v.ID, &v.Name, &v.Description, &items, &v.OriginalTotalCents,
		&v.DiscountedTotalCents, &v.SavingsCents, &v.MinQuantity, &v.MaxQuantity,
		&v.ValidFrom, &v.ValidUntil, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &v.Items); err != nil {
		return nil, err
	}
	return &v, nil
}

const productViewColumns = `id, name, description, price_cents, category, tags,
	in_stock, min_quantity, max_quantity, active, created_at, updated_at`

func (r *CatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productViewColumns+` FROM products WHERE id = $1`, id)
	view, err := scanProductView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read product view", err)
	}
	return view, nil
}

func (r *CatalogReadStore) FindActiveProducts(ctx context.Context) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productViewColumns+` FROM products
		WHERE active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active products", err)
	}
	defer rows.Close()

	var views []*queries.ProductView
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product views", err)
	}
	return views, nil
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var v queries.ProductView
	err := row.Scan(&v.ID, &v.Name, &v.Description, &v.PriceCents, &v.Category, &v.Tags,
		&v.InStock, &v.MinQuantity, &v.MaxQuantity, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
