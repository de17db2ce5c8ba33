package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storerating/internal/auth"
	apperrors "storerating/internal/errors"
	"storerating/internal/model"
	"storerating/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// UserSummary is the user as returned alongside a token.
type UserSummary struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup godoc
// @Summary Register a new user
// @Description Self-registration always creates an account with role user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req service.SignupInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	user, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User: UserSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.log, apperrors.ErrUnauthenticated)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.UserID, req.NewPassword); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}
