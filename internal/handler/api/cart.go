package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "grocery-api/internal/handler/dto/request"
	resdto "grocery-api/internal/handler/dto/response"
	"grocery-api/internal/handler/httperr"
	"grocery-api/internal/handler/middleware"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Get the caller's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	view, err := h.q.GetByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Validate cart
// @Description Check submitted items against the live catalog
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCartRequest true "Items to validate"
// @Success 200 {object} resdto.CartValidationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cart/validate [post]
func (h *CartHandler) Validate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.ValidateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ValidateCart(c.Request.Context(), userID, req)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Validation failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// @Summary Put offer line
// @Description Add an offer to the cart or change its quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PutOfferLineRequest true "Offer and quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/offers [put]
func (h *CartHandler) PutOffer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.PutOfferLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	updated, err := h.cmds.PutOfferLine(c.Request.Context(), userID, req)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

// @Summary Put product line
// @Description Add a product to the cart or change its quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PutProductLineRequest true "Product and quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/products [put]
func (h *CartHandler) PutProduct(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.PutProductLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	updated, err := h.cmds.PutProductLine(c.Request.Context(), userID, req)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

// @Summary Remove offer line
// @Description Remove an offer from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cart/offers/{id} [delete]
func (h *CartHandler) RemoveOffer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	updated, err := h.cmds.RemoveOfferLine(c.Request.Context(), userID, offerID)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

// @Summary Remove product line
// @Description Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cart/products/{id} [delete]
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	updated, err := h.cmds.RemoveProductLine(c.Request.Context(), userID, productID)
	if err != nil {
		h.abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(updated))
}

// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	if err := h.cmds.ClearCart(c.Request.Context(), userID); err != nil {
		h.abortCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) abortCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
	case errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrOfferNotOrderable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Offer is not currently orderable", nil)
	case errors.Is(err, commands.ErrProductNotOrderable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Product is not currently orderable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cart operation failed", nil)
	}
}
