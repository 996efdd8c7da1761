// Package cache persists fetched profiles so repeat searches within the
// TTL skip the network entirely.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/model"
)

// Cacher defines the interface for profile cache operations. It exists
// so the orchestrator can be tested against an in-memory fake.
type Cacher interface {
	Get(username string, now time.Time) (*Entry, bool)
	Set(username string, profile *model.Profile, now time.Time, ttl time.Duration) error
	Clear() error
	Stats() (Stats, error)
}

// Ensure Cache implements Cacher interface.
var _ Cacher = (*Cache)(nil)

// Cache stores one JSON entry per username in a directory under the
// user cache dir. Usernames are case-sensitive keys, stored as typed.
//
// Known consistency gap: the directory is shared by concurrent gitcher
// processes with no locking; the last writer wins silently. Entries are
// never evicted, only ignored once expired and overwritten on the next
// successful fetch.
type Cache struct {
	dir string
}

// New creates a cache rooted at the default location.
func New() (*Cache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	cacheDir = filepath.Join(cacheDir, "gitcher", "profiles")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{dir: cacheDir}, nil
}

// NewWithDir creates a cache at the given directory (for testing).
func NewWithDir(dir string) *Cache {
	return &Cache{dir: dir}
}

// entryPath generates the file name for a username. GitHub logins are
// restricted to alphanumerics and hyphens, so they are filesystem-safe
// as-is; the replacement is a guard against hostile input.
func (c *Cache) entryPath(username string) string {
	safe := strings.ReplaceAll(username, string(filepath.Separator), "_")
	return filepath.Join(c.dir, fmt.Sprintf("github-user-%s.json", safe))
}

// Get retrieves the cached entry for a username. Returns false when no
// entry exists, the schema version changed, or the entry has expired.
// Expired entries are left on disk; they are dead data until the next
// successful fetch overwrites them.
func (c *Cache) Get(username string, now time.Time) (*Entry, bool) {
	data, err := os.ReadFile(c.entryPath(username))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Version != Version {
		log.Debug("cache version mismatch", "cached", entry.Version, "current", Version, "username", username)
		return nil, false
	}

	if !now.Before(entry.ExpiresAt) {
		log.Debug("cache entry expired", "username", username, "expiredAt", entry.ExpiresAt)
		return nil, false
	}

	return &entry, true
}

// Set writes the profile for a username with expiry now+ttl,
// overwriting any previous entry unconditionally.
func (c *Cache) Set(username string, profile *model.Profile, now time.Time, ttl time.Duration) error {
	if profile == nil {
		return nil
	}

	entry := Entry{
		User:         profile.User,
		Repositories: profile.Repositories,
		CachedAt:     now,
		ExpiresAt:    now.Add(ttl),
		Version:      Version,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.entryPath(username), data, 0600)
}

// Clear removes all cached entries
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Stats returns cache statistics
func (c *Cache) Stats() (Stats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, nil
		}
		return Stats{}, err
	}

	var stats Stats
	now := time.Now()

	for _, dirEntry := range entries {
		data, err := os.ReadFile(filepath.Join(c.dir, dirEntry.Name()))
		if err != nil {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}

		stats.Total++
		if entry.Valid(now) {
			stats.Valid++
		} else {
			stats.Expired++
		}
	}

	return stats, nil
}
