package cache

import "time"

// Layered reads through memory into disk and promotes disk hits, so a
// long-lived scheduler serves repeat fetches from RAM while keeping the
// markup across restarts.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered builds a memory-over-disk cache.
func NewLayered(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *Layered {
	return &Layered{
		memory: NewMemory(memoryTTL),
		disk:   NewDisk(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk. A disk hit is promoted into
// memory under the default TTL.
func (l *Layered) Get(key string) ([]byte, bool) {
	if val, found := l.memory.Get(key); found {
		return val, true
	}

	if val, found := l.disk.Get(key); found {
		l.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set writes to both layers.
func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

// Delete removes the entry from both layers.
func (l *Layered) Delete(key string) error {
	l.memory.Delete(key)
	l.disk.Delete(key)
	return nil
}

// Clear empties both layers.
func (l *Layered) Clear() error {
	l.memory.Clear()
	l.disk.Clear()
	return nil
}
