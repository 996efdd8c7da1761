// Package service orchestrates the fetch flow between the cooldown
// gate, the profile cache, and the GitHub API.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gitcher/gitcher/internal/cache"
	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/model"
)

// ProfileAPI is the slice of the GitHub client the orchestrator needs.
// It exists so tests can count calls with a fake.
type ProfileAPI interface {
	FetchUser(ctx context.Context, username string) (*model.UserProfile, error)
	FetchRepositories(ctx context.Context, username string) ([]model.Repository, error)
}

// Source identifies where a fetch result came from.
type Source int

const (
	SourceAPI Source = iota
	SourceCache
)

// Service coordinates a profile fetch: cooldown check, cache lookup,
// the two dependent network calls, and the write-through on success.
type Service struct {
	api    ProfileAPI
	cache  cache.Cacher
	limits *github.Tracker
	now    func() time.Time
}

// Option is a functional option for configuring a Service.
type Option func(*Service)

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service. If c is nil, caching is disabled and every
// fetch goes to the network.
func New(api ProfileAPI, c cache.Cacher, limits *github.Tracker, opts ...Option) *Service {
	s := &Service{
		api:    api,
		cache:  c,
		limits: limits,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the rate limit tracker shared with the API client.
func (s *Service) Limits() *github.Tracker {
	return s.limits
}

// Fetch resolves a username to a profile. The order is fixed: reject
// while a cooldown is in effect, serve an unexpired cache entry, then
// fetch the user and only after that the repository list. Both calls
// must succeed before anything is cached; any failure leaves the cache
// untouched and discards partial data.
func (s *Service) Fetch(ctx context.Context, username string) (*model.Profile, Source, error) {
	now := s.now()

	if s.limits.Blocked(now) {
		return nil, SourceAPI, &github.BlockedError{Until: s.limits.CooldownUntil()}
	}

	if s.cache != nil {
		if entry, ok := s.cache.Get(username, now); ok {
			log.Info("cache hit", "username", username, "expiresAt", entry.ExpiresAt)
			return entry.Profile(), SourceCache, nil
		}
	}

	user, err := s.api.FetchUser(ctx, username)
	if err != nil {
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			s.limits.TriggerCooldown(rateErr.ResetAt)
		}
		return nil, SourceAPI, err
	}

	// Fetching repositories for a nonexistent user would be wasted
	// work, so this call only happens after the user fetch succeeds. A
	// not-found here is anomalous, not a missing user.
	repos, err := s.api.FetchRepositories(ctx, username)
	if err != nil {
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			s.limits.TriggerCooldown(rateErr.ResetAt)
		}
		if errors.Is(err, github.ErrUserNotFound) {
			err = &github.UpstreamError{Status: 404}
		}
		return nil, SourceAPI, err
	}

	profile := &model.Profile{
		User:         *user,
		Repositories: repos,
	}

	if s.cache != nil {
		if err := s.cache.Set(username, profile, s.now(), constants.ProfileCacheTTL); err != nil {
			log.Warn("failed to write profile cache", "username", username, "error", err)
		}
	}

	return profile, SourceAPI, nil
}
