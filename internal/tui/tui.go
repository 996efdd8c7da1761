package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/gitcher/gitcher/internal/bookmarks"
)

// Run starts the interactive explorer and blocks until it exits.
func Run(svc Fetcher, marks *bookmarks.Store, opts ...ModelOption) error {
	model := NewModel(svc, marks, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ShouldUseTUI returns true if the TUI should be used based on environment.
func ShouldUseTUI() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}
