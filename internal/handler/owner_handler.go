package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storerating/internal/auth"
	apperrors "storerating/internal/errors"
	"storerating/internal/service"
)

// OwnerHandler serves the store owner dashboard.
type OwnerHandler struct {
	ownerService service.OwnerService
	log          logrus.FieldLogger
}

// NewOwnerHandler creates a new owner handler.
func NewOwnerHandler(ownerService service.OwnerService, log logrus.FieldLogger) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService, log: log}
}

// Dashboard godoc
// @Summary Owner dashboard
// @Description The caller's stores, each with its raters and average rating.
// @Tags owner
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.OwnerDashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /owner/dashboard [get]
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.log, apperrors.ErrUnauthenticated)
	}

	dashboard, err := h.ownerService.Dashboard(c.Request().Context(), claims.UserID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
