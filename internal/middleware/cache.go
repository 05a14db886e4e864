package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Gladwin-7/bike-rental-system/internal/config"
)

// Cache serves the bike listings from Redis. Availability changes with
// every rent and return, so every successful mutation calls Invalidate;
// clients that re-fetch after a mutation always observe canonical
// state. Invalidation bumps an epoch counter that is part of every
// cache key: a response captured before the bump is stored under the
// retired epoch and never served again, so a handler that read the
// database before a commit cannot resurrect pre-commit state. Retired
// entries simply age out via the TTL.
type Cache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

// NewCache builds a Cache. A nil Redis client or a disabled config
// turns both the middleware and Invalidate into no-ops.
func NewCache(cfg config.CacheConfig, rdb *redis.Client) *Cache {
	return &Cache{cfg: cfg, rdb: rdb}
}

func (m *Cache) enabled() bool { return m != nil && m.cfg.Enabled && m.rdb != nil }

// epochKey holds the invalidation counter shared by all cached listings.
func (m *Cache) epochKey() string { return m.cfg.Prefix + ":epoch" }

func (m *Cache) key(c echo.Context, epoch string) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%s:%x", m.cfg.Prefix, epoch, sum[:])
}

// captureWriter captures the response body/status while forwarding to
// the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware caches successful GET responses under the configured
// prefix and serves hits without touching the database. The epoch is
// read before the handler runs and baked into the key, so a store that
// races with Invalidate lands under the old epoch and is unreachable.
func (m *Cache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.enabled() || c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			epoch, err := m.rdb.Get(ctx, m.epochKey()).Result()
			if err != nil {
				epoch = "0"
			}
			key := m.key(c, epoch)
			if body, err := m.rdb.Get(ctx, key).Bytes(); err == nil && len(body) > 0 {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}
			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				_ = m.rdb.SetEx(context.Background(), key, cw.buf.Bytes(), m.cfg.TTL).Err()
			}
			return nil
		}
	}
}

// Invalidate retires every cached listing by bumping the epoch.
// Mutation handlers call it after a successful commit; failures are
// logged and otherwise ignored since the TTL bounds staleness anyway.
func (m *Cache) Invalidate(ctx context.Context) {
	if !m.enabled() {
		return
	}
	if err := m.rdb.Incr(ctx, m.epochKey()).Err(); err != nil {
		log.Printf("cache: invalidate failed: %v", err)
	}
}
