package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/middleware"
	"github.com/ykovtun/avtosos/internal/pkg/models"
	"github.com/ykovtun/avtosos/internal/utils"
	"github.com/ykovtun/avtosos/services/repair"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	authUC repair.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC repair.AuthUC) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register handles account creation requests
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	resp, err := h.authUC.Register(c.Request().Context(), req)
	if err != nil {
		logger.Warn("Registration failed",
			logger.String("username", req.Username),
			logger.Err(err))
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusCreated, "Account created", resp)
}

// Token handles credential login requests
func (h *AuthHandler) Token(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	resp, err := h.authUC.Login(c.Request().Context(), req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "Token issued", resp)
}

// Me handles profile requests for the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.authUC.Profile(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, nethttp.StatusOK, "", profile)
}
