//go:build unit

package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/cart"
	"grocery-api/internal/domain/order"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/usecase/shared"
	"grocery-api/internal/worker"
	"grocery-api/tests/common/fake"
)

type stubRenderer struct {
	pdf []byte
	err error
}

func (r *stubRenderer) Render(*order.Order) ([]byte, error) {
	return r.pdf, r.err
}

type stubStorage struct {
	url      string
	err      error
	uploaded map[string][]byte
}

func (s *stubStorage) Upload(_ context.Context, objectPath string, pdf []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[objectPath] = pdf
	return s.url, nil
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	ct := cart.NewCart(uuid.New())
	ct.PutOfferLine(cart.OfferLine{
		OfferID:              uuid.New(),
		Name:                 "Breakfast Bundle",
		Quantity:             1,
		DiscountedTotalCents: 500,
		OriginalTotalCents:   600,
	})
	o, err := order.New(
		order.FormatNumber(now, 1),
		order.Customer{UserID: ct.UserID, FirstName: "Ava", LastName: "Nguyen", Phone: "+15550001111"},
		ct,
		order.Fulfillment{Method: order.MethodPickup, Pickup: &order.PickupDetails{PickupAt: now.Add(2 * time.Hour)}},
		now,
	)
	require.NoError(t, err)
	return o
}

func invoiceJob(t *testing.T, orderID uuid.UUID) repository.Job {
	t.Helper()
	body, err := json.Marshal(shared.InvoicePayload{OrderID: orderID})
	require.NoError(t, err)
	return repository.Job{ID: 3, Kind: shared.JobKindInvoice, Payload: body, Attempts: 1}
}

func TestInvoiceHandler_RendersAndStoresURL(t *testing.T) {
	uow := fake.NewUnitOfWork()
	ord := placedOrder(t)
	uow.Tx.OrderRepo.Orders[ord.ID] = ord

	renderer := &stubRenderer{pdf: []byte("%PDF-1.7")}
	store := &stubStorage{url: "https://storage.example.com/signed"}
	handler := worker.NewInvoiceHandler(uow, uow.Tx.OrderRepo, renderer, store)

	require.NoError(t, handler.Handle(context.Background(), invoiceJob(t, ord.ID)))

	assert.Equal(t, "https://storage.example.com/signed", uow.Tx.OrderRepo.InvoiceURLs[ord.ID])
	assert.Len(t, store.uploaded, 1)
	assert.Contains(t, store.uploaded, "invoices/"+ord.ID.String()+"/"+ord.Number+".pdf")
}

func TestInvoiceHandler_SkipsWhenInvoiceExists(t *testing.T) {
	uow := fake.NewUnitOfWork()
	ord := placedOrder(t)
	existing := "https://storage.example.com/old"
	ord.InvoiceURL = &existing
	uow.Tx.OrderRepo.Orders[ord.ID] = ord

	store := &stubStorage{url: "https://storage.example.com/new"}
	handler := worker.NewInvoiceHandler(uow, uow.Tx.OrderRepo, &stubRenderer{pdf: []byte("x")}, store)

	require.NoError(t, handler.Handle(context.Background(), invoiceJob(t, ord.ID)))
	assert.Empty(t, store.uploaded)
	assert.Empty(t, uow.Tx.OrderRepo.InvoiceURLs)
}

func TestInvoiceHandler_VanishedOrderIsSwallowed(t *testing.T) {
	uow := fake.NewUnitOfWork()
	handler := worker.NewInvoiceHandler(uow, uow.Tx.OrderRepo, &stubRenderer{}, &stubStorage{})

	assert.NoError(t, handler.Handle(context.Background(), invoiceJob(t, uuid.New())))
}

func TestInvoiceHandler_FailureIsRecordedAndReturned(t *testing.T) {
	uow := fake.NewUnitOfWork()
	ord := placedOrder(t)
	uow.Tx.OrderRepo.Orders[ord.ID] = ord

	renderErr := errors.New("font table corrupt")
	handler := worker.NewInvoiceHandler(uow, uow.Tx.OrderRepo, &stubRenderer{err: renderErr}, &stubStorage{})

	err := handler.Handle(context.Background(), invoiceJob(t, ord.ID))
	assert.ErrorIs(t, err, renderErr)
	assert.Equal(t, "font table corrupt", uow.Tx.OrderRepo.InvoiceFailures[ord.ID])
}

func TestInvoiceHandler_UploadFailure(t *testing.T) {
	uow := fake.NewUnitOfWork()
	ord := placedOrder(t)
	uow.Tx.OrderRepo.Orders[ord.ID] = ord

	uploadErr := errors.New("bucket unreachable")
	handler := worker.NewInvoiceHandler(uow, uow.Tx.OrderRepo, &stubRenderer{pdf: []byte("x")}, &stubStorage{err: uploadErr})

	err := handler.Handle(context.Background(), invoiceJob(t, ord.ID))
	assert.ErrorIs(t, err, uploadErr)
	assert.Equal(t, "bucket unreachable", uow.Tx.OrderRepo.InvoiceFailures[ord.ID])
}
