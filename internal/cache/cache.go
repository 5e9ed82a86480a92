// Package cache stores fetched page markup between runs, so repeated
// scrapes of slow-changing studio sites stay cheap and polite.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one fetch. The render variant is part
// of the key: static markup and browser-rendered markup for the same
// URL are different documents.
func Key(url, variant string) string {
	hash := sha256.Sum256([]byte(url + "|" + variant))
	return "classscout:v1:" + hex.EncodeToString(hash[:])
}
