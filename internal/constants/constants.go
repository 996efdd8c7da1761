// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout the gitcher application.
package constants

import "time"

// Cache constants
const (
	// ProfileCacheTTL is the maximum age of a cached profile before a
	// search performs a fresh network fetch.
	ProfileCacheTTL = 10 * time.Minute
)

// Rate limiting constants
const (
	// RateLimitWarnThreshold is the remaining-request count below which
	// a rate limit warning is surfaced. Advisory only; requests are
	// never blocked by the warning itself.
	RateLimitWarnThreshold = 10

	// CooldownTickInterval is the cadence at which the cooldown
	// countdown is recomputed.
	CooldownTickInterval = time.Second
)

// Fetch constants
const (
	// RepoPageSize is the number of repositories requested per profile
	// fetch. The upstream list is sorted by stars descending and capped
	// at this many entries.
	RepoPageSize = 30
)

// Bookmark constants
const (
	// MaxBookmarks is the maximum number of bookmarked users retained.
	// Adding one more evicts the oldest entry.
	MaxBookmarks = 10
)

// Display constants
const (
	// NoticeDuration is how long transient notices stay on screen in
	// the TUI before clearing themselves.
	NoticeDuration = 4 * time.Second

	// PopularRepoCount is the number of repositories shown before the
	// list is expanded to all entries.
	PopularRepoCount = 6

	// TruncationSuffixWidth is the width of the "..." suffix when truncating strings.
	TruncationSuffixWidth = 3
)
