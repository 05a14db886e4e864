package config

import (
	"os"
	"time"
)

// CacheConfig defines settings for the bike-list response cache. When
// Enabled is false or no Redis client is configured, caching is
// disabled and mutation handlers skip invalidation. Only GET responses
// are cached; TTL is deliberately short because bike availability
// changes with every rent and return, with explicit invalidation on
// mutations as the primary freshness mechanism.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:  getenv("CACHE_PREFIX", "bikes"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
