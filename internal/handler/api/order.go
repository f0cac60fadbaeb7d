package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grocery-api/internal/domain/order"
	reqdto "grocery-api/internal/handler/dto/request"
	resdto "grocery-api/internal/handler/dto/response"
	"grocery-api/internal/handler/httperr"
	"grocery-api/internal/handler/middleware"
	"grocery-api/internal/infra"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
)

type OrderHandler struct {
	cmds       commands.OrderCommands
	statusCmds commands.OrderStatusCommands
	q          queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, statusCmds commands.OrderStatusCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, statusCmds: statusCmds, q: q}
}

// @Summary Create order
// @Description Check out the caller's cart into an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Fulfillment details"
// @Success 201 {object} resdto.OrderCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidFulfillment),
			errors.Is(err, order.ErrMissingDeliveryDetails),
			errors.Is(err, order.ErrMissingPickupDetails),
			errors.Is(err, order.ErrPickupNotInFuture):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid fulfillment details", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrCartEmpty):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrCartInvalid):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart failed validation", err.Error())
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create order", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateOrderResult(result))
}

// @Summary Get order
// @Description Get an order by ID. Customers see only their own orders.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing role context"), "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Order belongs to another user", nil)
		case infra.IsKind(err, infra.KindNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrderListResponse
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	items, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	resp := make([]*resdto.OrderListResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, resdto.FromOrderListItem(item))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update order status
// @Description Advance an order through its lifecycle (staff only)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	updated, err := h.statusCmds.UpdateStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown order status", nil)
		case errors.Is(err, commands.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errors.Is(err, order.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Status transition not allowed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update status", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(updated))
}
