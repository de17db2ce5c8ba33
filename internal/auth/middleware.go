package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "storerating/internal/errors"
)

// ContextKey is where the verified *Claims are stored on the echo context.
const ContextKey = "identity"

// Middleware verifies the bearer token on every request and stores its claims.
// Every failure (missing, malformed, expired, bad signature) is a 401.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated()
		},
	})
}

// Require rejects callers whose role lacks capability with a 403. It must run
// after Middleware.
func Require(capability Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthenticated()
			}
			if !Can(claims.Role, capability) {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

func unauthenticated() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
	return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
}
