package enrich

import (
	"context"
	"encoding/json"

	"github.com/netpulse/go-netpulse/pkg/cache"
	"github.com/netpulse/go-netpulse/pkg/metrics"
)

// CachedProxyLookup puts a TTL cache in front of a ProxyLookup. A hit
// replays the stored provider answer without a network call; only successful
// lookups are cached (a failed lookup stays retryable on the next request).
type CachedProxyLookup struct {
	inner ProxyLookup
	store cache.Store
}

func NewCachedProxyLookup(inner ProxyLookup, store cache.Store) *CachedProxyLookup {
	return &CachedProxyLookup{inner: inner, store: store}
}

func (c *CachedProxyLookup) Lookup(ctx context.Context, ip string) (*ProxyResult, error) {
	key := "proxycheck:" + ip
	if raw, ok := c.store.Get(ctx, key); ok {
		var cached ProxyResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CacheResults.WithLabelValues("proxycheck", "hit").Inc()
			return &cached, nil
		}
	}
	metrics.CacheResults.WithLabelValues("proxycheck", "miss").Inc()

	result, err := c.inner.Lookup(ctx, ip)
	if err != nil {
		metrics.Lookups.WithLabelValues("proxycheck", "error").Inc()
		return nil, err
	}
	metrics.Lookups.WithLabelValues("proxycheck", "ok").Inc()

	if raw, err := json.Marshal(result); err == nil {
		c.store.Set(ctx, key, raw)
	}
	return result, nil
}

// CachedOrgLookup is the same wrapper for organization lookups.
type CachedOrgLookup struct {
	inner OrgLookup
	store cache.Store
}

func NewCachedOrgLookup(inner OrgLookup, store cache.Store) *CachedOrgLookup {
	return &CachedOrgLookup{inner: inner, store: store}
}

func (c *CachedOrgLookup) Lookup(ctx context.Context, ip string) (*OrgResult, error) {
	key := "ipinfo:" + ip
	if raw, ok := c.store.Get(ctx, key); ok {
		var cached OrgResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CacheResults.WithLabelValues("ipinfo", "hit").Inc()
			return &cached, nil
		}
	}
	metrics.CacheResults.WithLabelValues("ipinfo", "miss").Inc()

	result, err := c.inner.Lookup(ctx, ip)
	if err != nil {
		metrics.Lookups.WithLabelValues("ipinfo", "error").Inc()
		return nil, err
	}
	metrics.Lookups.WithLabelValues("ipinfo", "ok").Inc()

	if raw, err := json.Marshal(result); err == nil {
		c.store.Set(ctx, key, raw)
	}
	return result, nil
}
