package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_PREFIX", "")

	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("default TTL: got %s want 30s", cfg.TTL)
	}
	if cfg.Prefix != "bikes" {
		t.Fatalf("default prefix: got %q", cfg.Prefix)
	}
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_PREFIX", "inventory")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("cache should be disabled")
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL: got %s want 2m", cfg.TTL)
	}
	if cfg.Prefix != "inventory" {
		t.Fatalf("prefix: got %q", cfg.Prefix)
	}
}

func TestLoadCacheConfigBadTTLFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := LoadCacheConfig()
	if cfg.TTL != time.Second {
		t.Fatalf("bad TTL should fall back to 1s, got %s", cfg.TTL)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_PREFIX",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("rate limiting should default to enabled")
	}
	if cfg.Capacity != 60 || cfg.RefillTokens != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RefillInterval != time.Second || cfg.TTL != 10*time.Minute {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "-1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("capacity should clamp to 1, got %d", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Fatalf("refill tokens should clamp to 1, got %d", cfg.RefillTokens)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("refill interval should clamp to 1s, got %s", cfg.RefillInterval)
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		t.Fatalf("TTL %s should be at least %s", cfg.TTL, min)
	}
}
