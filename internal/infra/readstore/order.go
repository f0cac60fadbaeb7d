package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/usecase/queries"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, number, user_id, customer, offer_lines, product_lines,
			subtotal_cents, savings_cents, delivery_fee_cents, tax_cents, total_cents,
			fulfillment_method, delivery, pickup, status, history, estimated_delivery,
			invoice_url, created_at, updated_at
		FROM orders WHERE id = $1`, id)

	view, err := scanOrderView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read order view", err)
	}
	return view, nil
}

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, number, status, total_cents, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders for user", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(&item.ID, &item.Number, &item.Status, &item.TotalCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order list", err)
	}
	return items, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var v queries.OrderView
	var customer, offerLines, productLines, history []byte
	var delivery, pickup []byte

	err := row.Scan(&v.ID, &v.Number, &v.UserID, &customer, &offerLines, &productLines,
		&v.SubtotalCents, &v.SavingsCents, &v.DeliveryFeeCents, &v.TaxCents, &v.TotalCents,
		&v.FulfillmentMethod, &delivery, &pickup, &v.Status, &history,
		&v.EstimatedDelivery, &v.InvoiceURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}

	var snapshot struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
	}
	if err := json.Unmarshal(customer, &snapshot); err != nil {
		return nil, err
	}
	v.CustomerName = strings.TrimSpace(snapshot.FirstName + " " + snapshot.LastName)
	v.CustomerPhone = snapshot.Phone

	if err := json.Unmarshal(offerLines, &v.OfferLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productLines, &v.ProductLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &v.History); err != nil {
		return nil, err
	}
	if delivery != nil {
		if err := json.Unmarshal(delivery, &v.Delivery); err != nil {
			return nil, err
		}
	}
	if pickup != nil {
		if err := json.Unmarshal(pickup, &v.Pickup); err != nil {
			return nil, err
		}
	}
	return &v, nil
}
