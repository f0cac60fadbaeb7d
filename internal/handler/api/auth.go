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
	"grocery-api/internal/usecase/queries"
)

type AuthHandler struct {
	authCmds  commands.AuthCommands
	verifCmds commands.VerificationCommands
	users     queries.UserReadStore
}

func NewAuthHandler(authCmds commands.AuthCommands, verifCmds commands.VerificationCommands, users queries.UserReadStore) *AuthHandler {
	return &AuthHandler{authCmds: authCmds, verifCmds: verifCmds, users: users}
}

// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.authCmds.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Login failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Send verification code
// @Description Send a one-time code over SMS for registration or password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SendVerificationCodeRequest true "Phone and purpose"
// @Success 200 {object} resdto.SendCodeResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /auth/verification-codes [post]
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	var req reqdto.SendVerificationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.verifCmds.SendVerificationCode(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPhone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
		case errors.Is(err, commands.ErrTooManyCodes):
			httperr.AbortWithError(c, http.StatusTooManyRequests, err, "Too many codes requested, try again later", nil)
		case errors.Is(err, commands.ErrSMSDeliveryFailed):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Could not deliver SMS", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to send code", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSendCodeResult(result))
}

// @Summary Verify code
// @Description Check a one-time code. Registration yields a login token, password reset yields a reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyCodeRequest true "Phone, code and purpose"
// @Success 200 {object} resdto.VerifyCodeResponse
// @Failure 400 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /auth/verification-codes/verify [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req reqdto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.verifCmds.VerifyCode(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPhone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
		case errors.Is(err, commands.ErrCodeMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Incorrect code", nil)
		case errors.Is(err, commands.ErrCodeExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Code expired or never sent", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Verification failed", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifyCodeResult(result))
}

// @Summary Reset password
// @Description Set a new password using a reset token from code verification
// @Tags auth
// @Accept json
// @Param request body reqdto.ResetPasswordRequest true "Phone, new password and reset token"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /auth/password-reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req reqdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.verifCmds.ResetPassword(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPhone):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
		case errors.Is(err, commands.ErrResetTokenInvalid):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Reset token is not valid for this phone", nil)
		case errors.Is(err, commands.ErrResetTokenExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Reset token expired or already used", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Password reset failed", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	view, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load user", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(view))
}

// @Summary Register device token
// @Description Register an FCM device token for push notifications
// @Tags auth
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.RegisterDeviceTokenRequest true "Device token"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/device-tokens [post]
func (h *AuthHandler) RegisterDeviceToken(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.authCmds.RegisterDeviceToken(c.Request.Context(), userID, req.Token); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to register device token", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
