package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// RateLimitError is returned when the API rejects a request for
// exceeding the rate limit. ResetAt is the time the quota resets,
// taken from the response headers.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return "API rate limit exceeded"
}

// BlockedError is returned when a request is rejected client-side
// because a rate limit cooldown is still in effect. No network call is
// attempted.
type BlockedError struct {
	Until time.Time
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("rate limit cooldown in effect until %s", e.Until.Format(time.Kitchen))
}

// UpstreamError is returned for any non-success response that is not a
// not-found or rate-limit condition.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

// NetworkError wraps a transport-level failure (no HTTP response).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage converts a fetch failure into the message shown to the
// user. Unknown errors pass through unchanged.
func UserMessage(err error) string {
	var rle *RateLimitError
	var be *BlockedError
	var ue *UpstreamError
	var ne *NetworkError

	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.As(err, &rle):
		return "API rate limit exceeded. Please wait before making another request."
	case errors.As(err, &be):
		return be.Error()
	case errors.As(err, &ue):
		return fmt.Sprintf("Failed to fetch data (status %d)", ue.Status)
	case errors.As(err, &ne):
		return "Network error. Check your connection and try again."
	default:
		return err.Error()
	}
}
