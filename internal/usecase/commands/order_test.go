//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/catalog"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/domain/user"
	reqdto "grocery-api/internal/handler/dto/request"
	"grocery-api/internal/pkg/clock"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/shared"
	"grocery-api/tests/common/fake"
)

var checkoutNow = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

type orderFixture struct {
	cmds    commands.OrderCommands
	uow     *fake.UnitOfWork
	userID  uuid.UUID
	offerID uuid.UUID
}

// newOrderFixture seeds a customer, one active offer, and a cart holding
// two units of it (1000 cents subtotal).
func newOrderFixture() *orderFixture {
	uow := fake.NewUnitOfWork()
	tx := uow.Tx

	userID := uuid.New()
	tx.UserRepo.Users[userID] = &user.User{
		ID:        userID,
		Phone:     "+15550001111",
		Email:     "ava@example.com",
		FirstName: "Ava",
		LastName:  "Nguyen",
		Role:      user.RoleCustomer,
	}

	offerID := uuid.New()
	tx.OfferRepo.Offers[offerID] = &catalog.Offer{
		ID:                   offerID,
		Name:                 "Breakfast Bundle",
		Items:                []catalog.OfferItem{{ProductID: uuid.New(), Name: "Eggs", BasePriceCents: 600, DiscountedPriceCents: 500}},
		OriginalTotalCents:   600,
		DiscountedTotalCents: 500,
		SavingsCents:         100,
		MinQuantity:          1,
		MaxQuantity:          5,
		Status:               catalog.OfferActive,
	}

	ct := cart.NewCart(userID)
	ct.PutOfferLine(cart.OfferLine{
		OfferID:              offerID,
		Name:                 "Breakfast Bundle",
		Quantity:             2,
		DiscountedTotalCents: 1000,
		OriginalTotalCents:   1200,
	})
	tx.CartRepo.Carts[userID] = ct

	cmds := commands.NewOrderCommands(
		uow,
		tx.CartRepo,
		tx.OfferRepo,
		tx.ProductRepo,
		tx.UserRepo,
		clock.NewMockClock(checkoutNow),
	)
	return &orderFixture{cmds: cmds, uow: uow, userID: userID, offerID: offerID}
}

func deliveryRequest() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		FulfillmentMethod: "delivery",
		DeliveryDetails: &reqdto.DeliveryDetailsRequest{
			Address:    "12 Orchard Lane",
			City:       "Portland",
			PostalCode: "97201",
		},
	}
}

func TestCreateOrder_Delivery(t *testing.T) {
	f := newOrderFixture()

	result, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, order.FormatNumber(checkoutNow, 1), result.OrderNumber)
	// 1000 subtotal + 599 fee below the free-delivery threshold
	// + 160 tax on the fee-inclusive base.
	assert.Equal(t, int64(1759), result.TotalCents)
	require.NotNil(t, result.EstimatedDelivery)
	assert.Equal(t, checkoutNow.Add(2*time.Hour), *result.EstimatedDelivery)

	stored, ok := f.uow.Tx.OrderRepo.Orders[result.OrderID]
	require.True(t, ok)
	assert.Equal(t, order.StatusPending, stored.Status)
	assert.Equal(t, f.userID, stored.Customer.UserID)
	assert.Equal(t, "Ava", stored.Customer.FirstName)

	assert.Contains(t, f.uow.Tx.CartRepo.Cleared, f.userID)
	assert.NotContains(t, f.uow.Tx.CartRepo.Carts, f.userID)
}

func TestCreateOrder_EnqueuesInvoiceJob(t *testing.T) {
	f := newOrderFixture()

	result, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.NoError(t, err)

	jobs := f.uow.Tx.OutboxRepo.Enqueued
	require.Len(t, jobs, 1)
	assert.Equal(t, shared.JobKindInvoice, jobs[0].Kind)
	assert.Equal(t, checkoutNow, jobs[0].RunAt)

	var payload shared.InvoicePayload
	require.NoError(t, json.Unmarshal(jobs[0].Payload, &payload))
	assert.Equal(t, result.OrderID, payload.OrderID)
}

func TestCreateOrder_NumbersAreSequentialPerDay(t *testing.T) {
	f := newOrderFixture()

	first, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.NoError(t, err)

	// Refill the cart for a second checkout on the same day.
	ct := cart.NewCart(f.userID)
	ct.PutOfferLine(cart.OfferLine{
		OfferID:              f.offerID,
		Name:                 "Breakfast Bundle",
		Quantity:             1,
		DiscountedTotalCents: 500,
		OriginalTotalCents:   600,
	})
	f.uow.Tx.CartRepo.Carts[f.userID] = ct

	second, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, order.FormatNumber(checkoutNow, 1), first.OrderNumber)
	assert.Equal(t, order.FormatNumber(checkoutNow, 2), second.OrderNumber)
}

func TestCreateOrder_Pickup(t *testing.T) {
	f := newOrderFixture()

	result, err := f.cmds.CreateOrder(context.Background(), f.userID, reqdto.CreateOrderRequest{
		FulfillmentMethod: "pickup",
		PickupDetails:     &reqdto.PickupDetailsRequest{PickupTime: checkoutNow.Add(3 * time.Hour)},
	})
	require.NoError(t, err)

	// 1000 subtotal + 100 tax; pickup carries no delivery fee.
	assert.Equal(t, int64(1100), result.TotalCents)
	assert.Nil(t, result.EstimatedDelivery)
}

func TestCreateOrder_FulfillmentErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     reqdto.CreateOrderRequest
		wantErr error
	}{
		{
			name:    "unknown method",
			req:     reqdto.CreateOrderRequest{FulfillmentMethod: "drone"},
			wantErr: order.ErrInvalidFulfillment,
		},
		{
			name:    "delivery without details",
			req:     reqdto.CreateOrderRequest{FulfillmentMethod: "delivery"},
			wantErr: order.ErrMissingDeliveryDetails,
		},
		{
			name:    "pickup without details",
			req:     reqdto.CreateOrderRequest{FulfillmentMethod: "pickup"},
			wantErr: order.ErrMissingPickupDetails,
		},
		{
			name: "pickup in the past",
			req: reqdto.CreateOrderRequest{
				FulfillmentMethod: "pickup",
				PickupDetails:     &reqdto.PickupDetailsRequest{PickupTime: checkoutNow.Add(-time.Minute)},
			},
			wantErr: order.ErrPickupNotInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			_, err := f.cmds.CreateOrder(context.Background(), f.userID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateOrder_NoCart(t *testing.T) {
	f := newOrderFixture()
	delete(f.uow.Tx.CartRepo.Carts, f.userID)

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	assert.ErrorIs(t, err, commands.ErrCartEmpty)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	f.uow.Tx.CartRepo.Carts[f.userID] = cart.NewCart(f.userID)

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	assert.ErrorIs(t, err, commands.ErrCartEmpty)
}

func TestCreateOrder_StaleOffer(t *testing.T) {
	f := newOrderFixture()
	delete(f.uow.Tx.OfferRepo.Offers, f.offerID)

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.ErrorIs(t, err, commands.ErrCartInvalid)
	assert.Contains(t, err.Error(), "no longer available")
	// Validation failure leaves the cart untouched.
	assert.Contains(t, f.uow.Tx.CartRepo.Carts, f.userID)
}

func TestCreateOrder_PriceDrift(t *testing.T) {
	f := newOrderFixture()
	f.uow.Tx.OfferRepo.Offers[f.offerID].DiscountedTotalCents = 450

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	require.ErrorIs(t, err, commands.ErrCartInvalid)
	assert.Contains(t, err.Error(), "has changed")
}

func TestCreateOrder_UserMissing(t *testing.T) {
	f := newOrderFixture()
	delete(f.uow.Tx.UserRepo.Users, f.userID)

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	assert.ErrorIs(t, err, commands.ErrUserNotFound)
}

func TestCreateOrder_WriteFailureSurfaces(t *testing.T) {
	f := newOrderFixture()
	f.uow.Tx.OrderRepo.CreateErr = assert.AnError

	_, err := f.cmds.CreateOrder(context.Background(), f.userID, deliveryRequest())
	assert.ErrorIs(t, err, commands.ErrOrderWriteFailed)
}
