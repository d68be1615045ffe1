// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// IPInfoToken enables the remote organization lookup. Empty skips it.
	IPInfoToken string

	// ProxycheckKey authenticates the proxy/VPN lookup. Empty means
	// anonymous mode; the lookup still runs.
	ProxycheckKey string

	// ASNDatabase is an optional local GeoLite2-ASN .mmdb path used as the
	// organization source when no IPInfoToken is set.
	ASNDatabase string

	// CacheTTL bounds how long a lookup answer is replayed.
	CacheTTL time.Duration

	// CacheMaxEntries bounds the in-memory cache size (LRU beyond it).
	CacheMaxEntries int

	// RedisAddr switches the lookup cache to a shared Redis instance.
	RedisAddr string

	// LookupTimeout bounds each outbound enrichment call.
	LookupTimeout time.Duration

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
}

// FromEnv builds the configuration from environment variables, applying
// defaults for everything optional.
func FromEnv() *Config {
	return &Config{
		Port:            envString("PORT", "8080"),
		IPInfoToken:     os.Getenv("IPINFO_TOKEN"),
		ProxycheckKey:   os.Getenv("PROXYCHECK_KEY"),
		ASNDatabase:     os.Getenv("GEOIP_ASN_DB"),
		CacheTTL:        envDuration("CACHE_TTL", 60*time.Second),
		CacheMaxEntries: envInt("CACHE_MAX_ENTRIES", 4096),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		LookupTimeout:   envDuration("LOOKUP_TIMEOUT", 5*time.Second),
		LogLevel:        envString("LOG_LEVEL", "info"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
