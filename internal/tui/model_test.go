package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitcher/gitcher/internal/bookmarks"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/model"
	"github.com/gitcher/gitcher/internal/service"
)

type fakeFetcher struct {
	limits  *github.Tracker
	profile *model.Profile
	source  service.Source
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, username string) (*model.Profile, service.Source, error) {
	f.calls++
	return f.profile, f.source, f.err
}

func (f *fakeFetcher) Limits() *github.Tracker {
	return f.limits
}

func testProfile() *model.Profile {
	return &model.Profile{
		User: model.UserProfile{Login: "octocat", Name: "The Octocat"},
		Repositories: []model.Repository{
			{Name: "hello-world", Stars: 100, Language: "Go"},
			{Name: "spoon-knife", Stars: 50, Language: "HTML"},
		},
	}
}

func newTestModel(t *testing.T, f *fakeFetcher) Model {
	t.Helper()
	store := bookmarks.NewStoreWithPath(filepath.Join(t.TempDir(), "bookmarks.json"))
	return NewModel(f, store)
}

func submitUsername(t *testing.T, m Model, username string) Model {
	t.Helper()
	m.input.SetValue(username)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestSubmitEmptyInputIgnored(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)

	for _, value := range []string{"", "   "} {
		m.input.SetValue(value)
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)

		if m.state != StateIdle {
			t.Errorf("state = %v after submitting %q, want StateIdle", m.state, value)
		}
		if cmd != nil {
			t.Errorf("expected no command for input %q", value)
		}
	}
}

func TestSubmitStartsLoading(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker(), profile: testProfile()}
	m := newTestModel(t, f)

	m = submitUsername(t, m, "octocat")

	if m.state != StateLoading {
		t.Fatalf("state = %v, want StateLoading", m.state)
	}
	if m.seq != 1 {
		t.Errorf("seq = %d, want 1", m.seq)
	}
}

func TestFetchSuccessShowsProfile(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m = submitUsername(t, m, "octocat")

	updated, _ := m.Update(fetchResultMsg{seq: 1, profile: testProfile(), source: service.SourceAPI})
	m = updated.(Model)

	if m.state != StateSuccess {
		t.Fatalf("state = %v, want StateSuccess", m.state)
	}
	if m.profile.User.Login != "octocat" {
		t.Errorf("profile login = %q", m.profile.User.Login)
	}
	if m.notice != "Loaded 2 repositories" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestFetchFromCacheNotice(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m = submitUsername(t, m, "octocat")

	updated, _ := m.Update(fetchResultMsg{seq: 1, profile: testProfile(), source: service.SourceCache})
	m = updated.(Model)

	if m.notice != "Loaded from cache" {
		t.Errorf("notice = %q, want Loaded from cache", m.notice)
	}
}

func TestStaleFetchResultDiscarded(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m = submitUsername(t, m, "octocat")
	m.seq = 2 // a second search superseded the first

	updated, _ := m.Update(fetchResultMsg{seq: 1, profile: testProfile(), source: service.SourceAPI})
	m = updated.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading (stale result applied)", m.state)
	}
	if m.profile != nil {
		t.Error("stale profile should not be displayed")
	}
}

func TestFetchErrorShowsMessage(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m = submitUsername(t, m, "nosuchuser")

	updated, _ := m.Update(fetchResultMsg{seq: 1, err: github.ErrUserNotFound})
	m = updated.(Model)

	if m.state != StateError {
		t.Fatalf("state = %v, want StateError", m.state)
	}
	if m.errMsg != "User not found" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if !m.input.Focused() {
		t.Error("input should regain focus after an error")
	}
}

func TestRateLimitErrorBlocks(t *testing.T) {
	limits := github.NewTracker()
	f := &fakeFetcher{limits: limits}
	m := newTestModel(t, f)
	m = submitUsername(t, m, "octocat")

	resetAt := time.Now().Add(time.Minute)
	limits.TriggerCooldown(resetAt)
	updated, cmd := m.Update(fetchResultMsg{seq: 1, err: &github.RateLimitError{ResetAt: resetAt}})
	m = updated.(Model)

	if m.state != StateBlocked {
		t.Fatalf("state = %v, want StateBlocked", m.state)
	}
	if cmd == nil {
		t.Error("expected a cooldown tick command")
	}
}

func TestSubmitIgnoredWhileBlocked(t *testing.T) {
	limits := github.NewTracker()
	limits.TriggerCooldown(time.Now().Add(time.Minute))
	f := &fakeFetcher{limits: limits}
	m := newTestModel(t, f)

	m = submitUsername(t, m, "octocat")

	if m.state != StateBlocked {
		t.Fatalf("state = %v, want StateBlocked", m.state)
	}
	if f.calls != 0 {
		t.Errorf("fetch calls = %d, want 0", f.calls)
	}
}

func TestCooldownExpiryReturnsToIdle(t *testing.T) {
	limits := github.NewTracker()
	limits.TriggerCooldown(time.Now().Add(-time.Second))
	f := &fakeFetcher{limits: limits}
	m := newTestModel(t, f)
	m.state = StateBlocked

	updated, _ := m.Update(cooldownTickMsg(time.Now()))
	m = updated.(Model)

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	if !m.input.Focused() {
		t.Error("input should be focused after cooldown ends")
	}
}

func TestClearNoticeSeqMismatchIgnored(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m.notice = "Loaded 2 repositories"
	m.noticeSeq = 2

	updated, _ := m.Update(clearNoticeMsg{seq: 1})
	m = updated.(Model)
	if m.notice == "" {
		t.Error("older clear message should not hide a newer notice")
	}

	updated, _ = m.Update(clearNoticeMsg{seq: 2})
	m = updated.(Model)
	if m.notice != "" {
		t.Errorf("notice = %q, want cleared", m.notice)
	}
}

func TestTabCyclesPanes(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m.input.Blur()

	want := []Pane{PaneInsights, PaneBookmarks, PaneRepositories}
	for _, pane := range want {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		if m.pane != pane {
			t.Fatalf("pane = %v, want %v", m.pane, pane)
		}
	}
}

func TestBookmarkToggle(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker()}
	m := newTestModel(t, f)
	m.state = StateSuccess
	m.profile = testProfile()
	m.input.Blur()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	m = updated.(Model)
	if !m.marks.Contains("octocat") {
		t.Fatal("expected octocat to be bookmarked")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	m = updated.(Model)
	if m.marks.Contains("octocat") {
		t.Fatal("expected bookmark to be removed")
	}
}

func TestInitialQuerySubmitted(t *testing.T) {
	f := &fakeFetcher{limits: github.NewTracker(), profile: testProfile()}
	store := bookmarks.NewStoreWithPath(filepath.Join(t.TempDir(), "bookmarks.json"))
	m := NewModel(f, store, WithInitialQuery("octocat"))

	updated, cmd := m.Update(submitInitialMsg{})
	m = updated.(Model)

	if m.state != StateLoading {
		t.Fatalf("state = %v, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Error("expected a fetch command")
	}
}
