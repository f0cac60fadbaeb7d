package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, name, description, price_cents, category, tags, in_stock,
	min_quantity, max_quantity, active, created_at, updated_at`

func (r *ProductRepository) Save(ctx context.Context, dbtx db.DBTX, p *catalog.Product) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO products (id, name, description, price_cents, category, tags, in_stock,
			min_quantity, max_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price_cents = EXCLUDED.price_cents,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			in_stock = EXCLUDED.in_stock,
			min_quantity = EXCLUDED.min_quantity,
			max_quantity = EXCLUDED.max_quantity,
			active = EXCLUDED.active,
			updated_at = now()`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Category, p.Tags, p.InStock,
		p.MinQuantity, p.MaxQuantity, p.Active)
	if err != nil {
		return infra.WrapRepoErr("failed to save product", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*catalog.Product, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	result := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := dbtx.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load products", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return result, nil
}

func (r *ProductRepository) ListActive(ctx context.Context, dbtx db.DBTX) ([]*catalog.Product, error) {
	rows, err := dbtx.Query(ctx, `SELECT `+productColumns+` FROM products WHERE active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Tags,
		&p.InStock, &p.MinQuantity, &p.MaxQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
