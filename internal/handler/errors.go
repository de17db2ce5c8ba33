package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "storerating/internal/errors"
	"storerating/internal/logger"
)

// fail converts err into an echo HTTP error. Internal errors are logged with the
// request id and replaced by a generic message.
func fail(c echo.Context, log logrus.FieldLogger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.FromContext(log, c).WithError(err).
			WithField("path", c.Path()).
			Error("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}

func invalidBody() error {
	return badRequest("invalid request body")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, badRequest("invalid " + name)
	}
	return uint(id), nil
}
