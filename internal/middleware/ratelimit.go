package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-seat-reservation/internal/config"
)

// NewRateLimit returns a fixed-window request limiter backed by Redis, so
// the limit is shared across all server instances.  Each (client, window)
// pair gets a counter via INCR with the window length as the key TTL; the
// request is rejected once the counter passes the configured limit.  On a
// Redis error the limiter fails open and lets the request through —
// throttling is a protection, not a correctness requirement.
func NewRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	windowSecs := int64(cfg.Window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / windowSecs
			key := strings.Join([]string{
				cfg.Prefix, clientKey(c), strconv.FormatInt(window, 10),
			}, ":")

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry := windowSecs - time.Now().Unix()%windowSecs
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": retry,
				})
			}
			return next(c)
		}
	}
}

// clientKey prefers the authenticated holder identity and falls back to
// the client IP for unauthenticated routes.
func clientKey(c echo.Context) string {
	if v := c.Get("holder_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return "holder:" + s
		}
	}
	if ip := c.RealIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:unknown"
}
