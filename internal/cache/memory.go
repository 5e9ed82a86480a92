package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory holds markup in process. Suited to one-shot runs that walk the
// source list once and exit.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-process cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		store: gocache.New(ttl, 10*time.Minute),
	}
}

// Get returns the markup stored under key, if present and fresh.
func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.store.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores markup under key for the given TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes one entry.
func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear() error {
	m.store.Flush()
	return nil
}
