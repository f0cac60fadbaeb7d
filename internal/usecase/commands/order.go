package commands

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/order"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/pkg/errs"
	"grocery-api/internal/usecase/shared"
)

var (
	ErrUserNotFound      = errs.New("user not found")
	ErrCartEmpty         = errs.New("cart contains no items")
	ErrCartInvalid       = errs.New("cart failed validation")
	ErrOrderWriteFailed  = errs.New("failed to persist order")
	ErrOrderNumberFailed = errs.New("failed to allocate order number")
)

type CreateOrderResult struct {
	OrderID           uuid.UUID
	OrderNumber       string
	TotalCents        int64
	EstimatedDelivery *time.Time
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req reqdto.CreateOrderRequest) (*CreateOrderResult, error)
}

type orderCommandsImpl struct {
	uow      shared.UnitOfWork
	carts    shared.CartRepository
	offers   shared.OfferRepository
	products shared.ProductRepository
	users    shared.UserRepository
	clock    clock.Clock
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	carts shared.CartRepository,
	offers shared.OfferRepository,
	products shared.ProductRepository,
	users shared.UserRepository,
	clock clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		uow:      uow,
		carts:    carts,
		offers:   offers,
		products: products,
		users:    users,
		clock:    clock,
	}
}

// CreateOrder runs the checkout sequence: fulfillment check, cart fetch,
// validation against the live catalog, number allocation, then one
// transaction that snapshots the order, clears the cart, and enqueues
// invoice generation. The number is allocated in its own transaction, so
// an aborted checkout leaves a gap in the day's sequence; numbers stay
// unique either way.
func (o *orderCommandsImpl) CreateOrder(ctx context.Context, userID uuid.UUID, req reqdto.CreateOrderRequest) (*CreateOrderResult, error) {
	now := o.clock.Now()

	fulfillment := req.ToFulfillment()
	if err := fulfillment.Validate(now); err != nil {
		return nil, err
	}

	ct, customer, err := o.loadCheckoutState(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	number, err := o.allocateNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.New(number, customer, ct, fulfillment, now)
	if err != nil {
		return nil, err
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, tx.DB(), newOrder); err != nil {
			return errs.Mark(err, ErrOrderWriteFailed)
		}
		if err := tx.Carts().Clear(ctx, tx.DB(), userID); err != nil {
			return errs.Mark(err, ErrOrderWriteFailed)
		}
		payload := shared.InvoicePayload{OrderID: newOrder.ID}
		if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.JobKindInvoice, payload, now); err != nil {
			return errs.Mark(err, ErrOrderWriteFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID:           newOrder.ID,
		OrderNumber:       newOrder.Number,
		TotalCents:        newOrder.Totals.TotalCents,
		EstimatedDelivery: newOrder.EstimatedDelivery,
	}, nil
}

func (o *orderCommandsImpl) loadCheckoutState(ctx context.Context, userID uuid.UUID, now time.Time) (*cart.Cart, order.Customer, error) {
	var (
		ct       *cart.Cart
		customer order.Customer
	)

	err := o.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		loaded, err := o.carts.FindByUserID(ctx, dbtx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCartEmpty
			}
			return errs.Mark(err, ErrCartLookupFailed)
		}
		if loaded.IsEmpty() {
			return ErrCartEmpty
		}

		if err := o.validateCart(ctx, dbtx, loaded, now); err != nil {
			return err
		}

		owner, err := o.users.FindByID(ctx, dbtx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrUserNotFound)
		}

		ct = loaded
		customer = order.Customer{
			UserID:    owner.ID,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Phone:     owner.Phone,
			Email:     owner.Email,
		}
		return nil
	})
	if err != nil {
		return nil, order.Customer{}, err
	}
	return ct, customer, nil
}

func (o *orderCommandsImpl) validateCart(ctx context.Context, dbtx db.DBTX, ct *cart.Cart, now time.Time) error {
	offerIDs := make([]uuid.UUID, len(ct.OfferLines))
	for i, l := range ct.OfferLines {
		offerIDs[i] = l.OfferID
	}
	productIDs := make([]uuid.UUID, len(ct.ProductLines))
	for i, l := range ct.ProductLines {
		productIDs[i] = l.ProductID
	}

	liveOffers, err := o.offers.FindByIDs(ctx, dbtx, offerIDs)
	if err != nil {
		return errs.Mark(err, ErrCartLookupFailed)
	}
	liveProducts, err := o.products.FindByIDs(ctx, dbtx, productIDs)
	if err != nil {
		return errs.Mark(err, ErrCartLookupFailed)
	}

	result := cart.Validate(ct, cart.Catalog{Offers: liveOffers, Products: liveProducts}, now)
	if !result.IsValid {
		messages := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			messages[i] = e.Message
		}
		return errs.Mark(errs.New(strings.Join(messages, "; ")), ErrCartInvalid)
	}
	return nil
}

// allocateNumber increments the day's counter in its own transaction so
// concurrent checkouts serialize only on this one row.
func (o *orderCommandsImpl) allocateNumber(ctx context.Context, now time.Time) (string, error) {
	var number string

	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		seq, err := tx.Counters().Next(ctx, tx.DB(), order.CounterKey(now))
		if err != nil {
			return errs.Mark(err, ErrOrderNumberFailed)
		}
		number = order.FormatNumber(now, seq)
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}
