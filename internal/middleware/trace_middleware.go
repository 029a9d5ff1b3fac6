package middleware

import (
	"context"

	"movieRecommender/business/recommender"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Trace assigns every request a trace id, carried through the request context
// into service-level logs and echoed back in the X-Trace-Id header.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get("X-Trace-Id")
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommender.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Trace-Id", tid)

			return next(c)
		}
	}
}
