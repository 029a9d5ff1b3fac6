package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type responseError struct {
	Message string `json:"message"`
}

// AdminAuth guards the admin routes with a static bearer token from
// configuration. The service has no user accounts, so there is no JWT flow.
func AdminAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, responseError{Message: "invalid authorization format"})
			}

			if subtle.ConstantTimeCompare([]byte(tokenParts[1]), []byte(token)) != 1 {
				return c.JSON(http.StatusForbidden, responseError{Message: "invalid admin token"})
			}

			return next(c)
		}
	}
}
