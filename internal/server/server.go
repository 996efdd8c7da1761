// Package server implements the relay endpoints that pass GitHub
// profile and repository requests through to the upstream REST API,
// forwarding rate limit headers and normalizing error bodies.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/log"
)

// DefaultUpstreamURL is the GitHub REST API root.
const DefaultUpstreamURL = "https://api.github.com"

const userAgent = "gitcher"

// Config holds relay server configuration.
type Config struct {
	Addr        string
	UpstreamURL string // defaults to DefaultUpstreamURL
}

// Server is the relay HTTP server. It holds no state beyond its
// routes: every request is a stateless pass-through to upstream.
type Server struct {
	router *chi.Mux
	config Config
	client *http.Client
}

// New creates a relay server.
func New(cfg Config) *Server {
	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = DefaultUpstreamURL
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	s.router.Route("/api/github", func(r chi.Router) {
		r.Get("/user/{username}", s.handleUser)
		r.Get("/repos/{username}", s.handleRepos)
	})

	return s
}

// Handler returns the HTTP handler (for tests and embedding).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("relay server starting", "addr", s.config.Addr, "upstream", s.config.UpstreamURL)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	target := fmt.Sprintf("%s/users/%s", s.config.UpstreamURL, username)
	s.relay(w, r, target, "Failed to fetch user data")
}

func (s *Server) handleRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	target := fmt.Sprintf("%s/users/%s/repos?sort=stars&direction=desc&per_page=%d",
		s.config.UpstreamURL, username, constants.RepoPageSize)
	s.relay(w, r, target, "Failed to fetch repositories")
}

// relay performs the upstream request and writes the mapped response.
// Rate limit headers are forwarded verbatim on every outcome so
// clients can track quota even on rejection.
func (s *Server) relay(w http.ResponseWriter, r *http.Request, target, failureMsg string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("upstream request failed", "target", target, "error", err)
		writeError(w, http.StatusBadGateway, "Internal server error")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	forwardRateHeaders(w, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch resp.StatusCode {
		case http.StatusNotFound:
			writeError(w, http.StatusNotFound, "User not found")
		case http.StatusForbidden:
			writeError(w, http.StatusForbidden, "API rate limit exceeded")
		default:
			writeError(w, resp.StatusCode, failureMsg)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Debug("response copy interrupted", "target", target, "error", err)
	}
}

// forwardRateHeaders copies the rate limit headers when present.
func forwardRateHeaders(w http.ResponseWriter, resp *http.Response) {
	for _, name := range []string{github.HeaderRateLimitRemaining, github.HeaderRateLimitReset} {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}
}

// writeError writes the JSON error body the clients expect.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
