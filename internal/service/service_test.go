package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gitcher/gitcher/internal/cache"
	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/model"
)

// fakeAPI counts calls so tests can assert which network requests a
// fetch actually made.
type fakeAPI struct {
	user     *model.UserProfile
	userErr  error
	repos    []model.Repository
	repoErr  error
	userCall int
	repoCall int
}

func (f *fakeAPI) FetchUser(ctx context.Context, username string) (*model.UserProfile, error) {
	f.userCall++
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeAPI) FetchRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	f.repoCall++
	if f.repoErr != nil {
		return nil, f.repoErr
	}
	return f.repos, nil
}

func okAPI() *fakeAPI {
	return &fakeAPI{
		user:  &model.UserProfile{Login: "octocat"},
		repos: []model.Repository{{Name: "hello-world", Stars: 100}},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFetchSuccessCachesProfile(t *testing.T) {
	api := okAPI()
	store := cache.NewWithDir(t.TempDir())
	now := time.Now()
	svc := New(api, store, github.NewTracker(), WithClock(fixedClock(now)))

	profile, source, err := svc.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if source != SourceAPI {
		t.Errorf("source = %v, want SourceAPI", source)
	}
	if profile.User.Login != "octocat" || len(profile.Repositories) != 1 {
		t.Errorf("unexpected profile: %+v", profile)
	}

	if _, ok := store.Get("octocat", now); !ok {
		t.Error("profile should be cached after a successful fetch")
	}
}

func TestFetchCacheHitSkipsNetwork(t *testing.T) {
	api := okAPI()
	store := cache.NewWithDir(t.TempDir())
	now := time.Now()
	svc := New(api, store, github.NewTracker(), WithClock(fixedClock(now)))

	if _, _, err := svc.Fetch(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}

	profile, source, err := svc.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if source != SourceCache {
		t.Errorf("source = %v, want SourceCache", source)
	}
	if profile.User.Login != "octocat" {
		t.Errorf("login = %q", profile.User.Login)
	}
	if api.userCall != 1 || api.repoCall != 1 {
		t.Errorf("network calls = %d/%d, want 1/1", api.userCall, api.repoCall)
	}
}

func TestFetchExpiredEntryRefetches(t *testing.T) {
	api := okAPI()
	store := cache.NewWithDir(t.TempDir())
	now := time.Now()
	clock := now
	svc := New(api, store, github.NewTracker(), WithClock(func() time.Time { return clock }))

	if _, _, err := svc.Fetch(context.Background(), "octocat"); err != nil {
		t.Fatal(err)
	}

	clock = now.Add(constants.ProfileCacheTTL)
	_, source, err := svc.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatal(err)
	}
	if source != SourceAPI {
		t.Errorf("source = %v, want SourceAPI after TTL elapsed", source)
	}
	if api.userCall != 2 {
		t.Errorf("user calls = %d, want 2", api.userCall)
	}
}

func TestFetchBlockedDuringCooldown(t *testing.T) {
	api := okAPI()
	limits := github.NewTracker()
	now := time.Now()
	limits.TriggerCooldown(now.Add(time.Minute))
	svc := New(api, cache.NewWithDir(t.TempDir()), limits, WithClock(fixedClock(now)))

	_, _, err := svc.Fetch(context.Background(), "octocat")

	var blocked *github.BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want BlockedError", err)
	}
	if api.userCall != 0 || api.repoCall != 0 {
		t.Errorf("network calls = %d/%d during cooldown, want 0/0", api.userCall, api.repoCall)
	}
}

func TestFetchUserFailureSkipsRepos(t *testing.T) {
	api := okAPI()
	api.userErr = github.ErrUserNotFound
	store := cache.NewWithDir(t.TempDir())
	svc := New(api, store, github.NewTracker())

	_, _, err := svc.Fetch(context.Background(), "nosuchuser")
	if !errors.Is(err, github.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if api.repoCall != 0 {
		t.Errorf("repo calls = %d after user failure, want 0", api.repoCall)
	}

	if _, ok := store.Get("nosuchuser", time.Now()); ok {
		t.Error("nothing should be cached after a failed fetch")
	}
}

func TestFetchRepoFailureDiscardsUser(t *testing.T) {
	api := okAPI()
	api.repoErr = &github.NetworkError{Err: errors.New("connection reset")}
	store := cache.NewWithDir(t.TempDir())
	svc := New(api, store, github.NewTracker())

	profile, _, err := svc.Fetch(context.Background(), "octocat")
	if err == nil {
		t.Fatal("expected an error")
	}
	if profile != nil {
		t.Error("partial profile should be discarded")
	}
	if _, ok := store.Get("octocat", time.Now()); ok {
		t.Error("nothing should be cached when the repository fetch fails")
	}
}

func TestFetchRepoNotFoundIsUpstreamError(t *testing.T) {
	api := okAPI()
	api.repoErr = github.ErrUserNotFound
	svc := New(api, cache.NewWithDir(t.TempDir()), github.NewTracker())

	_, _, err := svc.Fetch(context.Background(), "octocat")

	var ue *github.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if ue.Status != 404 {
		t.Errorf("status = %d, want 404", ue.Status)
	}
}

func TestFetchRateLimitTriggersCooldown(t *testing.T) {
	resetAt := time.Unix(1700000000, 0)
	api := okAPI()
	api.userErr = &github.RateLimitError{ResetAt: resetAt}
	limits := github.NewTracker()
	svc := New(api, cache.NewWithDir(t.TempDir()), limits)

	_, _, err := svc.Fetch(context.Background(), "octocat")

	var rle *github.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("err = %v, want RateLimitError", err)
	}
	if got := limits.CooldownUntil(); !got.Equal(resetAt) {
		t.Errorf("CooldownUntil() = %v, want %v", got, resetAt)
	}
}

func TestFetchRateLimitOnReposTriggersCooldown(t *testing.T) {
	resetAt := time.Now().Add(time.Minute)
	api := okAPI()
	api.repoErr = &github.RateLimitError{ResetAt: resetAt}
	limits := github.NewTracker()
	svc := New(api, cache.NewWithDir(t.TempDir()), limits)

	if _, _, err := svc.Fetch(context.Background(), "octocat"); err == nil {
		t.Fatal("expected an error")
	}
	if !limits.Blocked(time.Now()) {
		t.Error("cooldown should be active after a rate limited repository fetch")
	}
}

func TestFetchWithoutCache(t *testing.T) {
	api := okAPI()
	svc := New(api, nil, github.NewTracker())

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Fetch(context.Background(), "octocat"); err != nil {
			t.Fatal(err)
		}
	}
	if api.userCall != 2 {
		t.Errorf("user calls = %d with caching disabled, want 2", api.userCall)
	}
}
