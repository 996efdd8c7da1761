package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/log"
)

// Header names used by the GitHub API (and forwarded by the relay).
const (
	HeaderRateLimitRemaining = "x-ratelimit-remaining"
	HeaderRateLimitReset     = "x-ratelimit-reset"
)

// Tracker holds the rate limit state observed from response headers,
// plus the client-enforced cooldown set when a request is rejected for
// exceeding the limit. It is constructed once per process and passed
// explicitly to whatever issues or displays requests; there is no
// package-level instance.
//
// The tracker does not distinguish between endpoints: whichever
// response is processed last wins wholesale.
type Tracker struct {
	mu            sync.RWMutex
	remaining     int
	resetAt       time.Time
	hasData       bool
	cooldownUntil time.Time
}

// NewTracker returns an empty tracker: no observed state, no cooldown.
func NewTracker() *Tracker {
	return &Tracker{}
}

// UpdateFromHeaders replaces the tracked state from the rate limit
// headers of a response. Both headers must be present and numeric;
// otherwise prior state is left untouched and no error is raised.
func (t *Tracker) UpdateFromHeaders(h http.Header) {
	remaining, reset := h.Get(HeaderRateLimitRemaining), h.Get(HeaderRateLimitReset)
	if remaining == "" || reset == "" {
		return
	}

	rem, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}
	resetEpoch, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = rem
	t.resetAt = time.Unix(resetEpoch, 0)
	t.hasData = true
	log.Debug("rate limit updated", "remaining", rem, "resetAt", t.resetAt)
}

// Snapshot returns the last observed remaining count and reset time.
// ok is false until at least one response has been recorded.
func (t *Tracker) Snapshot() (remaining int, resetAt time.Time, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.remaining, t.resetAt, t.hasData
}

// ShouldWarn reports whether the remaining quota is low enough to
// surface a warning. Purely advisory; it never blocks requests.
func (t *Tracker) ShouldWarn() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasData && t.remaining < constants.RateLimitWarnThreshold
}

// TriggerCooldown starts a client-side cooldown lasting until resetAt.
// Called only when a request actually fails with a rate-limit signal.
func (t *Tracker) TriggerCooldown(resetAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cooldownUntil = resetAt
	log.Info("rate limit cooldown started", "until", resetAt)
}

// Blocked reports whether new requests should be rejected client-side.
// The block clears itself once the cooldown time passes; no explicit
// reset is needed.
func (t *Tracker) Blocked(now time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return now.Before(t.cooldownUntil)
}

// CooldownUntil returns the end of the current cooldown, or the zero
// time if none was ever triggered.
func (t *Tracker) CooldownUntil() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cooldownUntil
}
