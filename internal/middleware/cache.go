package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/citywave/table-reservation/internal/config"
)

// bodyCapture duplicates the response body while forwarding to the client
// so a successful render can be stored afterwards.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache returns a middleware serving public GET responses from Redis for
// the configured TTL. Only status-200 JSON bodies are cached. A nil client
// or a disabled config turns the middleware into a pass-through. Staleness
// up to the TTL is acceptable on browse endpoints: availability shown to
// guests is eventually consistent regardless, and the reserve guard is
// re-checked at commit time.
func Cache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}
			r := c.Request()
			// Key on the concrete request path, not the route pattern:
			// /v1/events/:id would otherwise share one entry across ids.
			sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])

			ctx, cancel := context.WithTimeout(r.Context(), 200*time.Millisecond)
			defer cancel()
			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				// Best effort; a failed SET just means the next request renders again.
				_ = rdb.Set(r.Context(), key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}
