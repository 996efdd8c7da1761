package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitcher/gitcher/internal/bookmarks"
	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/github"
	"github.com/gitcher/gitcher/internal/model"
	"github.com/gitcher/gitcher/internal/service"
)

// State is the lifecycle phase of the current search.
type State int

const (
	// StateIdle means no search is in flight and input is accepted.
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateSuccess means a profile is displayed.
	StateSuccess
	// StateError means the last search failed.
	StateError
	// StateBlocked means searches are refused until the rate limit resets.
	StateBlocked
)

// Pane selects which detail view is shown below the profile header.
type Pane int

const (
	// PaneRepositories lists the fetched repositories.
	PaneRepositories Pane = iota
	// PaneInsights shows aggregate repository statistics.
	PaneInsights
	// PaneBookmarks lists saved users.
	PaneBookmarks

	paneCount = 3
)

// Fetcher is the profile lookup surface the model drives.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (*model.Profile, service.Source, error)
	Limits() *github.Tracker
}

// Model is the Bubble Tea model for the interactive profile explorer.
type Model struct {
	svc    Fetcher
	marks  *bookmarks.Store
	input  textinput.Model
	spin   spinner.Model
	now    func() time.Time

	state        State
	profile      *model.Profile
	errMsg       string
	notice       string
	noticeSeq    int
	seq          int
	initialQuery string

	pane           Pane
	repoCursor     int
	bookmarkCursor int

	windowWidth  int
	windowHeight int
	quitting     bool
}

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*Model)

// WithInitialQuery submits a search as soon as the program starts.
func WithInitialQuery(username string) ModelOption {
	return func(m *Model) {
		m.initialQuery = strings.TrimSpace(username)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates the explorer model.
func NewModel(svc Fetcher, marks *bookmarks.Store, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = "GitHub username"
	ti.CharLimit = 39
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		svc:          svc,
		marks:        marks,
		input:        ti,
		spin:         sp,
		now:          time.Now,
		state:        StateIdle,
		windowWidth:  80,
		windowHeight: 24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if m.initialQuery != "" {
		cmds = append(cmds, func() tea.Msg { return submitInitialMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitInitialMsg:
		m.input.SetValue(m.initialQuery)
		return m.submit()

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case cooldownTickMsg:
		return m.handleCooldownTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input. Keys reach the text input only
// while it is focused; otherwise they drive pane navigation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.input.Focused() {
			return m.submit()
		}
		if m.pane == PaneBookmarks {
			return m.openBookmark()
		}
		return m, nil

	case "esc":
		if m.input.Focused() {
			m.input.Blur()
			return m, nil
		}
		m.input.Focus()
		return m, textinput.Blink

	case "tab":
		if !m.input.Focused() {
			m.pane = (m.pane + 1) % paneCount
			return m, nil
		}

	case "/":
		if !m.input.Focused() {
			m.input.Focus()
			return m, textinput.Blink
		}

	case "q":
		if !m.input.Focused() {
			m.quitting = true
			return m, tea.Quit
		}

	case "b":
		if !m.input.Focused() {
			return m.toggleBookmark()
		}

	case "j", "down":
		if !m.input.Focused() {
			m.moveCursor(1)
			return m, nil
		}

	case "k", "up":
		if !m.input.Focused() {
			m.moveCursor(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a fetch for the typed username. Empty input and
// submissions during a cooldown are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.input.Value())
	if username == "" {
		return m, nil
	}
	if m.svc.Limits().Blocked(m.now()) {
		m.state = StateBlocked
		return m, cooldownTick()
	}

	m.state = StateLoading
	m.profile = nil
	m.errMsg = ""
	m.notice = ""
	m.repoCursor = 0
	m.input.Blur()
	m.seq++

	return m, tea.Batch(m.fetchCmd(m.seq, username), m.spin.Tick)
}

func (m Model) fetchCmd(seq int, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		profile, source, err := m.svc.Fetch(ctx, username)
		return fetchResultMsg{seq: seq, profile: profile, source: source, err: err}
	}
}

// handleFetchResult applies a completed fetch. Results from earlier
// submissions are dropped so a newer search is never overwritten.
func (m Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}

	if msg.err != nil {
		var blocked *github.BlockedError
		var rateErr *github.RateLimitError
		switch {
		case errors.As(msg.err, &blocked), errors.As(msg.err, &rateErr):
			m.state = StateBlocked
			return m, cooldownTick()
		default:
			m.state = StateError
			m.errMsg = github.UserMessage(msg.err)
			m.input.Focus()
			return m, nil
		}
	}

	m.state = StateSuccess
	m.profile = msg.profile
	m.pane = PaneRepositories
	m.repoCursor = 0

	if msg.source == service.SourceCache {
		return m.showNotice("Loaded from cache")
	}
	return m.showNotice(pluralRepos(len(msg.profile.Repositories)))
}

// handleCooldownTick re-checks the rate limit each second and returns
// to the idle state once the cooldown has passed.
func (m Model) handleCooldownTick() (tea.Model, tea.Cmd) {
	if m.state != StateBlocked {
		return m, nil
	}
	if m.svc.Limits().Blocked(m.now()) {
		return m, cooldownTick()
	}
	m.state = StateIdle
	m.input.Focus()
	return m, textinput.Blink
}

// toggleBookmark saves or removes the displayed user.
func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	if m.pane == PaneBookmarks {
		saved := m.marks.List()
		if m.bookmarkCursor < len(saved) {
			login := saved[m.bookmarkCursor].Login
			if err := m.marks.Remove(login); err != nil {
				return m.showNotice("Bookmark error: " + err.Error())
			}
			if m.bookmarkCursor > 0 && m.bookmarkCursor >= len(saved)-1 {
				m.bookmarkCursor--
			}
			return m.showNotice("Removed " + login)
		}
		return m, nil
	}

	if m.profile == nil {
		return m, nil
	}
	login := m.profile.User.Login
	if m.marks.Contains(login) {
		if err := m.marks.Remove(login); err != nil {
			return m.showNotice("Bookmark error: " + err.Error())
		}
		return m.showNotice("Removed bookmark")
	}
	if err := m.marks.Add(m.profile.User, m.now()); err != nil {
		return m.showNotice("Bookmark error: " + err.Error())
	}
	return m.showNotice("Bookmarked " + login)
}

// openBookmark searches for the highlighted saved user.
func (m Model) openBookmark() (tea.Model, tea.Cmd) {
	saved := m.marks.List()
	if m.bookmarkCursor >= len(saved) {
		return m, nil
	}
	m.input.SetValue(saved[m.bookmarkCursor].Login)
	m.input.Focus()
	return m.submit()
}

func (m *Model) moveCursor(delta int) {
	switch m.pane {
	case PaneRepositories:
		if m.profile == nil {
			return
		}
		m.repoCursor = clamp(m.repoCursor+delta, 0, len(m.profile.Repositories)-1)
	case PaneBookmarks:
		m.bookmarkCursor = clamp(m.bookmarkCursor+delta, 0, len(m.marks.List())-1)
	}
}

func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(constants.NoticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func cooldownTick() tea.Cmd {
	return tea.Tick(constants.CooldownTickInterval, func(t time.Time) tea.Msg {
		return cooldownTickMsg(t)
	})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
