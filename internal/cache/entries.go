package cache

import (
	"time"

	"github.com/gitcher/gitcher/internal/model"
)

// Version is the current cache schema version. Entries written with a
// different version are treated as misses.
const Version = 1

// Entry is the serialized record for one username: the profile, the
// write time, and the absolute expiry. Storing the expiry inside the
// same record as the data means a single write covers both.
type Entry struct {
	User         model.UserProfile  `json:"user"`
	Repositories []model.Repository `json:"repos"`
	CachedAt     time.Time          `json:"cachedAt"`
	ExpiresAt    time.Time          `json:"expiresAt"`
	Version      int                `json:"version"`
}

// Profile reassembles the cached data as a profile value.
func (e *Entry) Profile() *model.Profile {
	return &model.Profile{
		User:         e.User,
		Repositories: e.Repositories,
	}
}

// Valid reports whether the entry is usable without a network call.
func (e *Entry) Valid(now time.Time) bool {
	return e.Version == Version && now.Before(e.ExpiresAt)
}

// Stats summarizes the state of the cache directory.
type Stats struct {
	Total   int // entries on disk, expired included
	Valid   int // entries still within their TTL
	Expired int // dead data awaiting overwrite
}
