package config

import "time"

// CacheConfig defines settings for the public-browse response cache. When
// Enabled is false or no Redis client is available, caching is disabled.
// The TTL is short on purpose: event availability is eventually consistent
// anyway, and a few seconds of staleness on the listing is the accepted
// cost of not hitting the store on every page load.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "10s"))
	if err != nil {
		ttl = 10 * time.Second
	}
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     ttl,
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}
