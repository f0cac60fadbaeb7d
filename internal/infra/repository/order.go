package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const orderColumns = `id, number, user_id, customer, offer_lines, product_lines,
	subtotal_cents, savings_cents, delivery_fee_cents, tax_cents, total_cents,
	fulfillment_method, delivery, pickup, status, history, estimated_delivery,
	invoice_url, invoice_failed, invoice_error, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.Order) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return infra.WrapRepoErr("failed to encode customer", err)
	}
	offerLines, err := json.Marshal(o.OfferLines)
	if err != nil {
		return infra.WrapRepoErr("failed to encode offer lines", err)
	}
	productLines, err := json.Marshal(o.ProductLines)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product lines", err)
	}
	history, err := json.Marshal(o.History)
	if err != nil {
		return infra.WrapRepoErr("failed to encode status history", err)
	}
	delivery, err := marshalNullable(o.Delivery)
	if err != nil {
		return infra.WrapRepoErr("failed to encode delivery details", err)
	}
	pickup, err := marshalNullable(o.Pickup)
	if err != nil {
		return infra.WrapRepoErr("failed to encode pickup details", err)
	}

	_, err = dbtx.Exec(ctx, `
		INSERT INTO orders (id, number, user_id, customer, offer_lines, product_lines,
			subtotal_cents, savings_cents, delivery_fee_cents, tax_cents, total_cents,
			fulfillment_method, delivery, pickup, status, history, estimated_delivery,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`,
		o.ID, o.Number, o.Customer.UserID, customer, offerLines, productLines,
		o.Totals.SubtotalCents, o.Totals.SavingsCents, o.Totals.DeliveryFeeCents,
		o.Totals.TaxCents, o.Totals.TotalCents,
		o.Fulfillment, delivery, pickup, o.Status, history, o.EstimatedDelivery,
		o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("order number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*order.Order, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) ([]*order.Order, error) {
	rows, err := dbtx.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return orders, nil
}

// UpdateStatus persists a transition together with the full history log.
func (r *OrderRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, o *order.Order) error {
	history, err := json.Marshal(o.History)
	if err != nil {
		return infra.WrapRepoErr("failed to encode status history", err)
	}
	tag, err := dbtx.Exec(ctx, `
		UPDATE orders SET status = $2, history = $3, updated_at = now() WHERE id = $1`,
		o.ID, o.Status, history)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetInvoiceURL(ctx context.Context, dbtx db.DBTX, id uuid.UUID, url string) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE orders SET invoice_url = $2, invoice_failed = false, invoice_error = '', updated_at = now()
		WHERE id = $1`, id, url)
	if err != nil {
		return infra.WrapRepoErr("failed to set invoice url", err)
	}
	return nil
}

func (r *OrderRepository) SetInvoiceFailure(ctx context.Context, dbtx db.DBTX, id uuid.UUID, errMsg string) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE orders SET invoice_failed = true, invoice_error = $2, updated_at = now()
		WHERE id = $1`, id, errMsg)
	if err != nil {
		return infra.WrapRepoErr("failed to record invoice failure", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var customer, offerLines, productLines, history []byte
	var delivery, pickup []byte

	err := row.Scan(&o.ID, &o.Number, new(uuid.UUID), &customer, &offerLines, &productLines,
		&o.Totals.SubtotalCents, &o.Totals.SavingsCents, &o.Totals.DeliveryFeeCents,
		&o.Totals.TaxCents, &o.Totals.TotalCents,
		&o.Fulfillment, &delivery, &pickup, &o.Status, &history, &o.EstimatedDelivery,
		&o.InvoiceURL, &o.InvoiceFailed, &o.InvoiceError, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(offerLines, &o.OfferLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productLines, &o.ProductLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &o.History); err != nil {
		return nil, err
	}
	if delivery != nil {
		if err := json.Unmarshal(delivery, &o.Delivery); err != nil {
			return nil, err
		}
	}
	if pickup != nil {
		if err := json.Unmarshal(pickup, &o.Pickup); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

func marshalNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
