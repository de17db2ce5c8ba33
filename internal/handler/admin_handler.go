package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storerating/internal/model"
	"storerating/internal/service"
)

// AdminHandler serves the admin-only endpoints.
type AdminHandler struct {
	userService      service.UserService
	storeService     service.StoreService
	dashboardService service.DashboardService
	log              logrus.FieldLogger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	userService service.UserService,
	storeService service.StoreService,
	dashboardService service.DashboardService,
	log logrus.FieldLogger,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		storeService:     storeService,
		dashboardService: dashboardService,
		log:              log,
	}
}

// Dashboard godoc
// @Summary Platform totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardCounts
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	counts, err := h.dashboardService.Counts(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// AddUser godoc
// @Summary Create a user with any role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateUserInput true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/add-user [post]
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req service.CreateUserInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// AddStore godoc
// @Summary Create a store
// @Description owner_id is optional; when set it must reference a user with role owner.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateStoreInput true "Store payload"
// @Success 201 {object} model.Store
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/add-store [post]
func (h *AdminHandler) AddStore(c echo.Context) error {
	var req service.CreateStoreInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	store, err := h.storeService.CreateStore(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, store)
}

// ListUsers godoc
// @Summary List users
// @Description owner_rating is the average over all of an owner's stores and null for other roles.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains (case-insensitive)"
// @Param email query string false "Email contains (case-insensitive)"
// @Param address query string false "Address contains (case-insensitive)"
// @Param role query string false "Exact role"
// @Param sortBy query string false "name, email, address, role or owner_rating"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} model.UserListing
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context(), model.ParseUserQuery(c.QueryParams()))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Description Owners also include their stores and overall owner rating.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.UserDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListStores godoc
// @Summary List stores (admin view)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains (case-insensitive)"
// @Param email query string false "Email contains (case-insensitive)"
// @Param address query string false "Address contains (case-insensitive)"
// @Param sortBy query string false "name, email, address or avg_rating"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} model.AdminStoreListing
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.storeService.ListStores(c.Request().Context(), model.ParseStoreQuery(c.QueryParams()))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, stores)
}
