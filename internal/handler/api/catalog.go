package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "grocery-api/internal/handler/dto/request"
	resdto "grocery-api/internal/handler/dto/response"
	"grocery-api/internal/handler/httperr"
	"grocery-api/internal/infra"
	"grocery-api/internal/usecase/commands"
	"grocery-api/internal/usecase/queries"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List offers
// @Description List offers that are active and inside their validity window
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.OfferResponse
// @Router /offers [get]
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	views, err := h.q.ListActiveOffers(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list offers", nil)
		return
	}
	resp := make([]*resdto.OfferResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, resdto.FromOfferView(v))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get offer
// @Description Get an offer by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id} [get]
func (h *CatalogHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetOffer(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load offer", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

// @Summary List products
// @Description List active products
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.q.ListActiveProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}
	resp := make([]*resdto.ProductResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, resdto.FromProductView(v))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get product
// @Description Get a product by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetProduct(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Create product
// @Description Create a catalog product (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProductRequest true "Product"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.abortCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProduct(created))
}

// @Summary Update product
// @Description Update a catalog product (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.ProductRequest true "Product"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ProductRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	updated, err := h.cmds.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.abortCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProduct(updated))
}

// @Summary Create offer
// @Description Create a bundle offer (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OfferRequest true "Offer"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/offers [post]
func (h *CatalogHandler) CreateOffer(c *gin.Context) {
	var req reqdto.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.CreateOffer(c.Request.Context(), req)
	if err != nil {
		h.abortCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOffer(created))
}

// @Summary Update offer
// @Description Update a bundle offer (staff only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.OfferRequest true "Offer"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/offers/{id} [put]
func (h *CatalogHandler) UpdateOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.OfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	updated, err := h.cmds.UpdateOffer(c.Request.Context(), id, req)
	if err != nil {
		h.abortCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOffer(updated))
}

// @Summary Delete offer
// @Description Delete a bundle offer and invalidate carts referencing it (staff only)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/offers/{id} [delete]
func (h *CatalogHandler) DeleteOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeleteOffer(c.Request.Context(), id); err != nil {
		h.abortCatalogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) abortCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidProduct), errors.Is(err, commands.ErrInvalidOffer):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid catalog entry", err.Error())
	case errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrOfferNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Offer not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Catalog write failed", nil)
	}
}
