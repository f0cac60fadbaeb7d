//go:build unit

package worker_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-api/internal/domain/user"
	"grocery-api/internal/infra/repository"
	"grocery-api/internal/pkg/config"
	"grocery-api/internal/usecase/shared"
	"grocery-api/internal/worker"
	"grocery-api/tests/common/fake"
)

type sentPush struct {
	Tokens []string
	Topic  string
	Title  string
	Body   string
	Data   map[string]string
}

type stubPushSender struct {
	sent []sentPush
	err  error
}

func (s *stubPushSender) SendToTokens(_ context.Context, tokens []string, title, body string, data map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentPush{Tokens: tokens, Title: title, Body: body, Data: data})
	return nil
}

func (s *stubPushSender) SendToTopic(_ context.Context, topic, title, body string, data map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentPush{Topic: topic, Title: title, Body: body, Data: data})
	return nil
}

func statusPushJob(t *testing.T, payload shared.OrderStatusPushPayload) repository.Job {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return repository.Job{ID: 4, Kind: shared.JobKindOrderStatusPush, Payload: body}
}

func TestOrderStatusPushHandler(t *testing.T) {
	uow := fake.NewUnitOfWork()
	sender := &stubPushSender{}
	handler := worker.NewOrderStatusPushHandler(uow, uow.Tx.UserRepo, sender)

	userID := uuid.New()
	uow.Tx.UserRepo.Users[userID] = &user.User{
		ID:           userID,
		Phone:        "+15550001111",
		Role:         user.RoleCustomer,
		DeviceTokens: []string{"device-a", "device-b"},
	}

	orderID := uuid.New()
	job := statusPushJob(t, shared.OrderStatusPushPayload{
		OrderID:     orderID,
		OrderNumber: "ORD-20260402-0001",
		UserID:      userID,
		Status:      "out_for_delivery",
	})
	require.NoError(t, handler.Handle(context.Background(), job))

	require.Len(t, sender.sent, 1)
	push := sender.sent[0]
	assert.Equal(t, []string{"device-a", "device-b"}, push.Tokens)
	assert.Equal(t, "Out for delivery", push.Title)
	assert.Equal(t, orderID.String(), push.Data["orderId"])
	assert.Equal(t, "ORD-20260402-0001", push.Data["orderNumber"])
	assert.Equal(t, "out_for_delivery", push.Data["status"])
}

func TestOrderStatusPushHandler_SkipsWithoutDevices(t *testing.T) {
	uow := fake.NewUnitOfWork()
	sender := &stubPushSender{}
	handler := worker.NewOrderStatusPushHandler(uow, uow.Tx.UserRepo, sender)

	userID := uuid.New()
	uow.Tx.UserRepo.Users[userID] = &user.User{ID: userID, Role: user.RoleCustomer}

	job := statusPushJob(t, shared.OrderStatusPushPayload{
		OrderID: uuid.New(), OrderNumber: "ORD-20260402-0002", UserID: userID, Status: "confirmed",
	})
	require.NoError(t, handler.Handle(context.Background(), job))
	assert.Empty(t, sender.sent)
}

func TestOrderStatusPushHandler_UnnotifiedStatusIsNoOp(t *testing.T) {
	uow := fake.NewUnitOfWork()
	sender := &stubPushSender{}
	handler := worker.NewOrderStatusPushHandler(uow, uow.Tx.UserRepo, sender)

	job := statusPushJob(t, shared.OrderStatusPushPayload{
		OrderID: uuid.New(), OrderNumber: "ORD-20260402-0003", UserID: uuid.New(), Status: "pending",
	})
	require.NoError(t, handler.Handle(context.Background(), job))
	assert.Empty(t, sender.sent)
}

func TestOrderStatusPushHandler_DeliveryFailureIsSwallowed(t *testing.T) {
	uow := fake.NewUnitOfWork()
	sender := &stubPushSender{err: assert.AnError}
	handler := worker.NewOrderStatusPushHandler(uow, uow.Tx.UserRepo, sender)

	userID := uuid.New()
	uow.Tx.UserRepo.Users[userID] = &user.User{ID: userID, Role: user.RoleCustomer, DeviceTokens: []string{"device-a"}}

	job := statusPushJob(t, shared.OrderStatusPushPayload{
		OrderID: uuid.New(), OrderNumber: "ORD-20260402-0004", UserID: userID, Status: "completed",
	})
	assert.NoError(t, handler.Handle(context.Background(), job))
}

func TestOfferBroadcastHandler(t *testing.T) {
	sender := &stubPushSender{}
	cfg := config.Config{Push: config.PushConfig{OffersTopic: "offers"}}
	handler := worker.NewOfferBroadcastHandler(sender, cfg)

	offerID := uuid.New()
	body, err := json.Marshal(shared.OfferBroadcastPayload{OfferID: offerID, Name: "Taco Night Kit"})
	require.NoError(t, err)

	job := repository.Job{ID: 5, Kind: shared.JobKindOfferBroadcast, Payload: body}
	require.NoError(t, handler.Handle(context.Background(), job))

	require.Len(t, sender.sent, 1)
	push := sender.sent[0]
	assert.Equal(t, "offers", push.Topic)
	assert.Equal(t, "New offer available", push.Title)
	assert.Equal(t, "Taco Night Kit", push.Body)
	assert.Equal(t, offerID.String(), push.Data["offerId"])
}
