// Package model defines the domain types shared across the application.
package model

import "time"

// UserProfile is the public profile of a GitHub user. The JSON field
// names match the GitHub REST API so relay responses and cached entries
// share one shape.
type UserProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	HTMLURL     string    `json:"html_url"`
}

// DisplayName returns the display name, falling back to the login.
func (u UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Repository is a single public repository. Size is in kilobytes, as
// reported by the API.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	Size        int       `json:"size"`
}

// Profile bundles a user with their repository list. Repository order is
// whatever the server returned (stars descending) and is preserved
// through caching and display.
type Profile struct {
	User         UserProfile  `json:"user"`
	Repositories []Repository `json:"repos"`
}

// BookmarkedUser is a saved profile summary, stamped with the time it
// was bookmarked.
type BookmarkedUser struct {
	Login        string    `json:"login"`
	Name         string    `json:"name,omitempty"`
	AvatarURL    string    `json:"avatar_url"`
	Bio          string    `json:"bio,omitempty"`
	PublicRepos  int       `json:"public_repos"`
	Followers    int       `json:"followers"`
	HTMLURL      string    `json:"html_url"`
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

// NewBookmark builds a bookmark entry from a user profile.
func NewBookmark(u UserProfile, at time.Time) BookmarkedUser {
	return BookmarkedUser{
		Login:        u.Login,
		Name:         u.Name,
		AvatarURL:    u.AvatarURL,
		Bio:          u.Bio,
		PublicRepos:  u.PublicRepos,
		Followers:    u.Followers,
		HTMLURL:      u.HTMLURL,
		BookmarkedAt: at,
	}
}
