package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "grocery-api/internal/handler/dto/request"
	resdto "grocery-api/internal/handler/dto/response"
	"grocery-api/internal/handler/httperr"
	"grocery-api/internal/handler/middleware"
	"grocery-api/internal/usecase/commands"
)

type AdminHandler struct {
	cmds commands.AdminCommands
}

func NewAdminHandler(cmds commands.AdminCommands) *AdminHandler {
	return &AdminHandler{cmds: cmds}
}

// @Summary Create admin user
// @Description Create an admin or super admin account (super admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAdminUserRequest true "Admin user"
// @Success 201 {object} resdto.AdminCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users [post]
func (h *AdminHandler) CreateAdminUser(c *gin.Context) {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing role context"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateAdminUser(c.Request.Context(), role, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotSuperAdmin):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Super admin role required", nil)
		case errors.Is(err, commands.ErrInvalidAdminInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid admin user input", err.Error())
		case errors.Is(err, commands.ErrEmailAlreadyUsed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create admin user", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateAdminResult(result))
}
