// Package github talks to the GitHub REST API and tracks the rate
// limit state observed on its responses.
package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/model"
)

// Client wraps the GitHub API client. Every response that carries rate
// limit headers updates the shared Tracker, whatever the outcome of the
// request.
type Client struct {
	client *github.Client
	limits *Tracker
}

// NewClient creates a new GitHub client. The token may be empty, in
// which case requests are unauthenticated and share the much smaller
// per-IP quota.
func NewClient(token string, limits *Tracker) *Client {
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		client: github.NewClient(httpClient),
		limits: limits,
	}
}

// SetBaseURL points the client at a different API root. Used by tests
// to target an httptest server.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	c.client.BaseURL = u
	return nil
}

// FetchUser retrieves the public profile for a username.
func (c *Client) FetchUser(ctx context.Context, username string) (*model.UserProfile, error) {
	user, resp, err := c.client.Users.Get(ctx, username)
	c.record(resp)
	if err != nil {
		return nil, c.mapError(resp, err)
	}

	profile := userFromAPI(user)
	return &profile, nil
}

// FetchRepositories retrieves the repository list for a username,
// sorted by stars descending and capped at RepoPageSize entries
// server-side. Order is preserved as returned.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort:      "stars",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: constants.RepoPageSize,
		},
	}

	repos, resp, err := c.client.Repositories.List(ctx, username, opts)
	c.record(resp)
	if err != nil {
		return nil, c.mapError(resp, err)
	}

	out := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, repoFromAPI(r))
	}
	return out, nil
}

// RateLimits queries the upstream rate limit endpoint directly. The
// call itself does not count against the quota.
func (c *Client) RateLimits(ctx context.Context) (*github.RateLimits, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, err
	}
	return limits, nil
}

// record feeds response headers into the tracker when a response
// exists at all.
func (c *Client) record(resp *github.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limits.UpdateFromHeaders(resp.Header)
}

// mapError converts a go-github error into the local failure taxonomy.
func (c *Client) mapError(resp *github.Response, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{ResetAt: rateErr.Rate.Reset.Time}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: reset}
	}

	if resp == nil || resp.Response == nil {
		return &NetworkError{Err: err}
	}

	log.Debug("upstream request failed", "status", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return &RateLimitError{ResetAt: resetFromHeaders(resp.Header)}
	default:
		return &UpstreamError{Status: resp.StatusCode}
	}
}

// resetFromHeaders reads the reset time from response headers. A
// missing or malformed header yields the epoch, which places the reset
// in the past and so never blocks.
func resetFromHeaders(h http.Header) time.Time {
	epoch, err := strconv.ParseInt(h.Get(HeaderRateLimitReset), 10, 64)
	if err != nil {
		epoch = 0
	}
	return time.Unix(epoch, 0)
}

func userFromAPI(u *github.User) model.UserProfile {
	return model.UserProfile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		Location:    u.GetLocation(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
		HTMLURL:     u.GetHTMLURL(),
	}
}

func repoFromAPI(r *github.Repository) model.Repository {
	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.GetLanguage(),
		UpdatedAt:   r.GetUpdatedAt().Time,
		Size:        r.GetSize(),
	}
}
