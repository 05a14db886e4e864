package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Gladwin-7/bike-rental-system/internal/config"
)

func listContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(req.URL.Path) // the router fills this in for real requests
	return c
}

// A response captured under one epoch must be unreachable once the
// epoch moves: the key of every lookup after an invalidation differs
// from the key a racing store writes to.
func TestCacheKeyRetiredByEpoch(t *testing.T) {
	m := NewCache(config.CacheConfig{Enabled: true, Prefix: "bikes"}, nil)

	c := listContext(t, "/get-bikes")
	before := m.key(c, "0")
	after := m.key(c, "1")
	if before == after {
		t.Fatal("bumping the epoch must change the cache key")
	}
	if again := m.key(listContext(t, "/get-bikes"), "0"); again != before {
		t.Fatalf("key must be stable within an epoch: %q vs %q", again, before)
	}
}

func TestCacheKeyVariesByPathAndQuery(t *testing.T) {
	m := NewCache(config.CacheConfig{Enabled: true, Prefix: "bikes"}, nil)

	base := m.key(listContext(t, "/get-bikes"), "0")
	if other := m.key(listContext(t, "/get-all-bikes"), "0"); other == base {
		t.Fatal("different paths must not share a cache key")
	}
	if other := m.key(listContext(t, "/get-bikes?type=Electric"), "0"); other == base {
		t.Fatal("different query strings must not share a cache key")
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	// nil Redis client: the middleware must call the handler and
	// Invalidate must be a safe no-op.
	m := NewCache(config.CacheConfig{Enabled: true, Prefix: "bikes"}, nil)

	called := false
	h := m.Middleware()(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
	c := listContext(t, "/get-bikes")
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("wrapped handler was not invoked")
	}
	m.Invalidate(context.Background())

	var unset *Cache
	if unset.enabled() {
		t.Fatal("nil cache must report disabled")
	}
}
