// Package bookmarks persists the list of saved users.
package bookmarks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/log"
	"github.com/gitcher/gitcher/internal/model"
)

// Store manages the bookmark list as a single JSON file, ordered
// most-recent-first and capped at MaxBookmarks entries. Adding beyond
// the cap evicts the oldest entry by insertion order.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store at the default location under the user
// cache dir.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "gitcher")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return &Store{
		path: filepath.Join(dir, "bookmarks.json"),
	}, nil
}

// NewStoreWithPath creates a store at the given path (for testing).
func NewStoreWithPath(path string) *Store {
	return &Store{path: path}
}

// List returns all bookmarks, most recent first. A missing or
// unreadable file yields an empty list.
func (s *Store) List() []model.BookmarkedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add bookmarks a user at the front of the list, stamped with now.
// A bookmark for the same login is replaced (and moves to the front);
// the list is then truncated to the cap, dropping the oldest entries.
func (s *Store) Add(user model.UserProfile, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.read()
	filtered := make([]model.BookmarkedUser, 0, len(list)+1)
	filtered = append(filtered, model.NewBookmark(user, now))
	for _, b := range list {
		if b.Login != user.Login {
			filtered = append(filtered, b)
		}
	}

	if len(filtered) > constants.MaxBookmarks {
		filtered = filtered[:constants.MaxBookmarks]
	}

	return s.write(filtered)
}

// Remove deletes the bookmark for a login. Removing a login that was
// never bookmarked is a no-op.
func (s *Store) Remove(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.read()
	filtered := list[:0]
	for _, b := range list {
		if b.Login != login {
			filtered = append(filtered, b)
		}
	}

	return s.write(filtered)
}

// Contains reports whether a login is currently bookmarked.
func (s *Store) Contains(login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.read() {
		if b.Login == login {
			return true
		}
	}
	return false
}

// read loads the list from disk.
func (s *Store) read() []model.BookmarkedUser {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("could not read bookmarks, starting fresh", "error", err)
		}
		return nil
	}

	var list []model.BookmarkedUser
	if err := json.Unmarshal(data, &list); err != nil {
		log.Debug("bookmarks file malformed, starting fresh", "error", err)
		return nil
	}
	return list
}

// write persists the list atomically via a temp file rename.
func (s *Store) write(list []model.BookmarkedUser) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
