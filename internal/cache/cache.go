// Package cache provides a TTL file cache for fetched upstream pages.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fluxstream/fluxstream/filesystem"
)

// Store keeps JSON encoded entries as individual files under one directory.
// A zero TTL disables the store: nothing is read or written.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func New(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl, now: time.Now}
}

// Enabled reports whether entries are kept at all.
func (s *Store) Enabled() bool {
	return s != nil && s.ttl > 0
}

// Key derives a deterministic file name from the given parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry into target if it exists and has not expired.
func (s *Store) Read(key string, target any) bool {
	if !s.Enabled() {
		return false
	}

	path := filepath.Join(s.dir, key)
	info, ok := filesystem.ModTime(path)
	if !ok || s.now().Sub(info.ModTime()) > s.ttl {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key.
func (s *Store) Write(key string, data any) error {
	if !s.Enabled() {
		return nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(s.dir, os.ModePerm); err != nil {
		return err
	}

	return filesystem.WriteAtomic(filepath.Join(s.dir, key), encoded)
}

// CollectGarbage removes expired entries.
func (s *Store) CollectGarbage() {
	if !s.Enabled() {
		return
	}

	fs := filesystem.API()
	entries, err := fs.ReadDir(s.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || s.now().Sub(entry.ModTime()) <= s.ttl {
			continue
		}
		_ = fs.Remove(filepath.Join(s.dir, entry.Name()))
	}
}
