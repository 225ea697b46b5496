package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-api/internal/ratelimit"
)

// RateLimit returns a middleware that throttles requests per client IP using
// the provided limiter strategy.  It is registered ahead of authentication
// so a flood is rejected before the more expensive token and user checks
// run.  Rejected requests receive 429 with a Retry-After hint.
func RateLimit(limiter ratelimit.Limiter, quota int) echo.MiddlewareFunc {
	if limiter == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			allowed, retryAfter := limiter.Allow(c.Request().Context(), ip)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(quota))
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many requests",
					"retry_after": retryAfter,
				})
			}
			return next(c)
		}
	}
}
