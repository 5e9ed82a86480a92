package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk persists markup under a spool directory, one file per key with
// the expiry stored alongside the payload. It survives restarts, which
// matters for scheduled runs.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache rooted at dir. ttl is the default expiry
// applied when Set is called with a zero TTL.
func NewDisk(dir string, ttl time.Duration) *Disk {
	return &Disk{
		dir: dir,
		ttl: ttl,
	}
}

type envelope struct {
	Markup    []byte    `json:"markup"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get reads the markup stored under key. Expired entries are removed on
// read.
func (d *Disk) Get(key string) ([]byte, bool) {
	path := d.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var ent envelope
	if err := json.Unmarshal(data, &ent); err != nil {
		return nil, false
	}

	if time.Now().After(ent.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return ent.Markup, true
}

// Set writes markup under key, creating the spool directory on first
// use.
func (d *Disk) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.ttl
	}

	ent := envelope{
		Markup:    value,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(d.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes one entry.
func (d *Disk) Delete(key string) error {
	return os.Remove(d.path(key))
}

// Clear removes the whole spool directory.
func (d *Disk) Clear() error {
	return os.RemoveAll(d.dir)
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".cache")
}
