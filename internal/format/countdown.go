// Package format provides shared text formatting utilities for
// terminal output.
package format

import (
	"fmt"
	"time"
)

// Countdown renders the time remaining until t as "M:SS", computed
// from the whole seconds left (rounded up). Zero or negative
// remainders render as "0:00".
func Countdown(until, now time.Time) string {
	remaining := until.Sub(now)
	seconds := int((remaining + time.Second - 1) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatAge formats a duration as a human-readable age string.
// Uses compact format: "now", "5m", "2h", "3d", "2w", "3mo".
func FormatAge(d time.Duration) string {
	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}
	if days < 30 {
		weeks := days / 7
		return fmt.Sprintf("%dw", weeks)
	}
	months := days / 30
	return fmt.Sprintf("%dmo", months)
}
