//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"grocery-api/internal/domain/order"
	"grocery-api/internal/domain/user"
	"grocery-api/internal/handler/api"
	reqdto "grocery-api/internal/handler/dto/request"
	resdto "grocery-api/internal/handler/dto/response"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
	"grocery-api/tests/common/httptest"
	"grocery-api/tests/common/testutil"
	commandsmock "grocery-api/tests/mock/commands"
	queriesmock "grocery-api/tests/mock/queries"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockOrderCommands
	mockStatusCmds  *commandsmock.MockOrderStatusCommands
	mockQueries     *queriesmock.MockOrderQueries
	handler         *api.OrderHandler
	authenticatedID uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockStatusCmds = commandsmock.NewMockOrderStatusCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockStatusCmds, s.mockQueries)
	s.authenticatedID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.authenticatedID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/orders", authMiddleware, s.handler.Create)
	s.router.GET("/orders", authMiddleware, s.handler.List)
	s.router.GET("/orders/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/admin/orders/:id/status", authMiddleware, s.handler.UpdateStatus)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func deliveryOrderBody() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		FulfillmentMethod: "delivery",
		DeliveryDetails: &reqdto.DeliveryDetailsRequest{
			Address:    "12 Orchard Lane",
			City:       "Portland",
			PostalCode: "97201",
		},
	}
}

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/orders"
	eta := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	result := &commands.CreateOrderResult{
		OrderID:           uuid.New(),
		OrderNumber:       "ORD-20260402-0001",
		TotalCents:        1699,
		EstimatedDelivery: &eta,
	}

	s.Run("success: returns 201 Created with the order number", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.authenticatedID, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, deliveryOrderBody(), "bearer-token")

		var resp resdto.OrderCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(result.OrderID, resp.OrderID)
		s.Equal("ORD-20260402-0001", resp.OrderNumber)
		s.Equal(int64(1699), resp.TotalCents)
	})

	s.Run("validation: rejects unknown fulfillment method", func() {
		body := testutil.DtoMap(s.T(), deliveryOrderBody(), testutil.Field("fulfillmentMethod", "drone"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("validation: rejects missing fulfillment method", func() {
		body := testutil.DtoMap(s.T(), deliveryOrderBody(), testutil.Field("fulfillmentMethod", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: empty cart maps to 422", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.authenticatedID, gomock.Any()).
			Return(nil, commands.ErrCartEmpty).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, deliveryOrderBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Cart is empty")
	})

	s.Run("error: invalid cart maps to 422 with detail", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.authenticatedID, gomock.Any()).
			Return(nil, commands.ErrCartInvalid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, deliveryOrderBody(), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Cart failed validation")
	})

	s.Run("error: missing delivery details maps to 400", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.authenticatedID, gomock.Any()).
			Return(nil, order.ErrMissingDeliveryDetails).Times(1)

		body := reqdto.CreateOrderRequest{FulfillmentMethod: "delivery"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid fulfillment details")
	})

	s.Run("auth: rejects missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, deliveryOrderBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	s.Run("success: returns the order view", func() {
		view := &queries.OrderView{
			ID:           orderID,
			Number:       "ORD-20260402-0001",
			UserID:       s.authenticatedID,
			CustomerName: "Ava Nguyen",
			TotalCents:   1699,
			Status:       "confirmed",
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authenticatedID, user.RoleCustomer, orderID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("ORD-20260402-0001", resp.Number)
		s.Equal("confirmed", resp.Status)
	})

	s.Run("error: another user's order maps to 403", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.authenticatedID, user.RoleCustomer, orderID).
			Return(nil, queries.ErrOrderAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Order belongs to another user")
	})

	s.Run("validation: rejects malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	s.Run("success: returns the caller's orders", func() {
		items := []*queries.OrderListItem{
			{ID: uuid.New(), Number: "ORD-20260402-0002", Status: "pending", TotalCents: 2100},
			{ID: uuid.New(), Number: "ORD-20260402-0001", Status: "completed", TotalCents: 1699},
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authenticatedID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var resp []resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("ORD-20260402-0002", resp[0].Number)
	})

	s.Run("success: empty history returns an empty array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.authenticatedID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})
}

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	orderID := uuid.New()
	url := "/admin/orders/" + orderID.String() + "/status"
	body := reqdto.UpdateOrderStatusRequest{Status: "confirmed"}

	s.Run("success: returns the updated status with history", func() {
		now := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
		updated := &order.Order{
			ID:     orderID,
			Number: "ORD-20260402-0001",
			Status: order.StatusConfirmed,
			History: []order.StatusChange{
				{Status: order.StatusPending, At: now.Add(-time.Hour)},
				{Status: order.StatusConfirmed, At: now},
			},
			UpdatedAt: now,
		}
		s.mockStatusCmds.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusConfirmed).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")

		var resp resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("confirmed", resp.Status)
		s.Len(resp.History, 2)
	})

	s.Run("error: unknown status maps to 400", func() {
		s.mockStatusCmds.EXPECT().UpdateStatus(gomock.Any(), orderID, order.Status("teleported")).
			Return(nil, commands.ErrInvalidStatus).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			reqdto.UpdateOrderStatusRequest{Status: "teleported"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown order status")
	})

	s.Run("error: disallowed transition maps to 422", func() {
		s.mockStatusCmds.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusConfirmed).
			Return(nil, order.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Status transition not allowed")
	})

	s.Run("error: unknown order maps to 404", func() {
		s.mockStatusCmds.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusConfirmed).
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}
