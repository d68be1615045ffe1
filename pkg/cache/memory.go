package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is a size-bounded in-memory Store. Entries expire after the
// configured TTL and the least recently used entry is evicted once the
// store reaches maxEntries, so a long-lived instance can not grow without
// bound.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory creates a memory store holding at most maxEntries live entries,
// each expiring after ttl.
func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	return &Memory{
		lru: expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	return m.lru.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.lru.Add(key, value)
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}
