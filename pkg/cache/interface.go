// Package cache provides the TTL cache in front of the external enrichment
// lookups. The store is an explicit dependency injected into the lookup
// wrappers, with a bounded in-memory implementation for single-instance
// deployments and a Redis implementation for multi-instance ones.
package cache

import "context"

// Store is a TTL key-value store. Entries expire after the store's
// configured TTL; an expired entry is treated as absent on read.
//
// Implementations must be safe for concurrent use. Writes are best-effort:
// a failed Set is not reported, since the cache only saves lookups and is
// never load-bearing.
type Store interface {
	// Get returns the value for key, or ok=false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the store's TTL.
	Set(ctx context.Context, key string, value []byte)
}
