package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"marketplace-console/internal/platform/requestid"
	"marketplace-console/internal/ports"
)

func RequestLogger(logger ports.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			ctx := c.Request().Context()
			logger.Info(ctx, "console request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"route_pattern", c.Path(),
				"status", c.Response().Status,
				"duration", time.Since(started).String(),
				"request_id", requestid.FromContext(ctx),
			)
			return nil
		}
	}
}

// RequestIDHandler stores echo's generated request id on the request context so the
// backend client can forward it.
func RequestIDHandler(c echo.Context, id string) {
	c.SetRequest(c.Request().WithContext(requestid.WithContext(c.Request().Context(), id)))
}
