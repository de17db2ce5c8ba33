package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storerating/internal/auth"
	"storerating/internal/config"
	apperrors "storerating/internal/errors"
	"storerating/internal/handler"
	"storerating/internal/logger"
	"storerating/internal/metrics"
	"storerating/internal/validation"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	Store  *handler.StoreHandler
	Admin  *handler.AdminHandler
	Owner  *handler.OwnerHandler
	Health *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log logrus.FieldLogger, jwtService *auth.JWTService, h Handlers) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = validation.NewCustomValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(logger.RequestLogger(log))
	e.Use(metrics.Middleware())

	e.GET("/healthz", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.POST("/auth/change-password", h.Auth.ChangePassword, auth.Require(auth.CapManageAccount))

	// Store routes
	stores := secured.Group("/stores")
	stores.GET("", h.Store.ListStores, auth.Require(auth.CapBrowseStores))
	stores.GET("/:id", h.Store.GetStore, auth.Require(auth.CapBrowseStores))
	stores.POST("/:id/rating", h.Store.SubmitRating, auth.Require(auth.CapRateStores))
	stores.PUT("/:id/rating", h.Store.ModifyRating, auth.Require(auth.CapRateStores))

	// Admin routes
	admin := secured.Group("/admin", auth.Require(auth.CapAdminister))
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/users/:id", h.Admin.GetUser)
	admin.GET("/stores", h.Admin.ListStores)
	admin.POST("/add-user", h.Admin.AddUser)
	admin.POST("/add-store", h.Admin.AddStore)

	// Owner routes
	owner := secured.Group("/owner", auth.Require(auth.CapOwnerDashboard))
	owner.GET("/dashboard", h.Owner.Dashboard)
}

// ErrorHandler renders every error as ErrorResponse, including echo's own
// routing and binding errors. Anything unrecognized is logged and hidden.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.FromContext(log, c).WithError(err).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.FromContext(log, c).WithError(err).Warn("write error response")
		}
	}
}

func render(err error) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, apperrors.ErrorResponse{Message: "internal server error", Code: "INTERNAL_ERROR"}
		}
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			return he.Code, msg
		case string:
			return he.Code, apperrors.ErrorResponse{Message: msg, Code: codeFor(he.Code)}
		}
		return he.Code, apperrors.ErrorResponse{Message: http.StatusText(he.Code), Code: codeFor(he.Code)}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "TOO_MANY_ATTEMPTS"
	}
	if status >= http.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}
