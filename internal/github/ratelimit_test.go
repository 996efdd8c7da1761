package github

import (
	"net/http"
	"testing"
	"time"
)

func headers(remaining, reset string) http.Header {
	h := http.Header{}
	if remaining != "" {
		h.Set(HeaderRateLimitRemaining, remaining)
	}
	if reset != "" {
		h.Set(HeaderRateLimitReset, reset)
	}
	return h
}

func TestUpdateFromHeaders(t *testing.T) {
	tests := []struct {
		name          string
		remaining     string
		reset         string
		wantOK        bool
		wantRemaining int
	}{
		{
			name:          "both present",
			remaining:     "58",
			reset:         "1700000000",
			wantOK:        true,
			wantRemaining: 58,
		},
		{
			name:      "remaining missing",
			reset:     "1700000000",
			wantOK:    false,
		},
		{
			name:      "reset missing",
			remaining: "58",
			wantOK:    false,
		},
		{
			name:      "remaining not numeric",
			remaining: "fifty",
			reset:     "1700000000",
			wantOK:    false,
		},
		{
			name:      "reset not numeric",
			remaining: "58",
			reset:     "soon",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.UpdateFromHeaders(headers(tt.remaining, tt.reset))

			remaining, resetAt, ok := tr.Snapshot()
			if ok != tt.wantOK {
				t.Fatalf("Snapshot ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if want := time.Unix(1700000000, 0); !resetAt.Equal(want) {
				t.Errorf("resetAt = %v, want %v", resetAt, want)
			}
		})
	}
}

func TestUpdateMalformedPreservesState(t *testing.T) {
	tr := NewTracker()
	tr.UpdateFromHeaders(headers("58", "1700000000"))
	tr.UpdateFromHeaders(headers("bogus", "1700000099"))

	remaining, _, ok := tr.Snapshot()
	if !ok || remaining != 58 {
		t.Errorf("remaining = %d ok = %v, want 58 true", remaining, ok)
	}
}

func TestLastResponseWins(t *testing.T) {
	tr := NewTracker()
	tr.UpdateFromHeaders(headers("58", "1700000000"))
	tr.UpdateFromHeaders(headers("57", "1700000000"))

	remaining, _, _ := tr.Snapshot()
	if remaining != 57 {
		t.Errorf("remaining = %d, want 57", remaining)
	}
}

func TestShouldWarn(t *testing.T) {
	tests := []struct {
		name      string
		remaining string
		want      bool
	}{
		{name: "plenty left", remaining: "100", want: false},
		{name: "at threshold", remaining: "10", want: false},
		{name: "below threshold", remaining: "9", want: true},
		{name: "exhausted", remaining: "0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.UpdateFromHeaders(headers(tt.remaining, "1700000000"))
			if got := tr.ShouldWarn(); got != tt.want {
				t.Errorf("ShouldWarn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldWarnNoData(t *testing.T) {
	tr := NewTracker()
	if tr.ShouldWarn() {
		t.Error("tracker with no observed responses should not warn")
	}
}

func TestCooldown(t *testing.T) {
	now := time.Now()
	tr := NewTracker()

	if tr.Blocked(now) {
		t.Fatal("new tracker should not be blocked")
	}

	resetAt := now.Add(time.Minute)
	tr.TriggerCooldown(resetAt)

	if !tr.Blocked(now) {
		t.Error("tracker should be blocked before the reset time")
	}
	if tr.Blocked(resetAt) {
		t.Error("block should clear exactly at the reset time")
	}
	if got := tr.CooldownUntil(); !got.Equal(resetAt) {
		t.Errorf("CooldownUntil() = %v, want %v", got, resetAt)
	}
}

func TestCooldownEpochResetNeverBlocks(t *testing.T) {
	tr := NewTracker()
	tr.TriggerCooldown(time.Unix(0, 0))
	if tr.Blocked(time.Now()) {
		t.Error("a cooldown in the past should not block")
	}
}
