package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/maghami/ticketline/internal/config"
)

// captureWriter tees the response body into a buffer while forwarding it
// to the client, so a successful response can be stored after the fact.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int
	limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.size+len(b) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += len(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCache returns a middleware that serves GET responses from
// Redis for the configured TTL. Only 200 responses under the size cap
// are stored. Intended for read-mostly listing routes; routes whose
// payload must reflect a write the same client just made should not be
// wrapped.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cfg.Prefix + ":" + c.Path() + "?" + c.Request().URL.RawQuery

			ctx := c.Request().Context()
			if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, cached)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.size <= cfg.MaxBodyBytes {
				// Best effort: a failed SET only costs the next caller a miss.
				rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL)
			}
			return nil
		}
	}
}

// InvalidateOnWrite returns a middleware for write routes whose success
// must evict a cached listing. After the handler completes with a 2xx
// status the cached entry for route is dropped, so the next read
// observes the write immediately instead of after the TTL.
func InvalidateOnWrite(cfg config.CacheConfig, rdb *redis.Client, route string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if s := c.Response().Status; s >= http.StatusOK && s < http.StatusMultipleChoices {
				InvalidateCache(cfg, rdb, route)
			}
			return nil
		}
	}
}

// InvalidateCache removes a cached route entry. InvalidateOnWrite calls
// it after a successful write so the next read observes the effect
// within the same second rather than after the TTL.
func InvalidateCache(cfg config.CacheConfig, rdb *redis.Client, route string) {
	if !cfg.Enabled || rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rdb.Del(ctx, cfg.Prefix+":"+route+"?")
}
