package tui

import (
	"fmt"
	"strings"

	"github.com/gitcher/gitcher/internal/constants"
	"github.com/gitcher/gitcher/internal/format"
	"github.com/gitcher/gitcher/internal/insights"
	"github.com/gitcher/gitcher/internal/model"
)

const maxVisibleRows = 12

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("gitcher"))
	b.WriteString(dimStyle.Render("  explore GitHub profiles"))
	b.WriteString("\n\n")

	b.WriteString(promptStyle.Render("search: "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch m.state {
	case StateLoading:
		b.WriteString(fmt.Sprintf("\n  %s Fetching profile...\n", spinnerStyle.Render(m.spin.View())))
	case StateError:
		b.WriteString("\n  " + errorStyle.Render(m.errMsg) + "\n")
	case StateBlocked:
		until := m.svc.Limits().CooldownUntil()
		countdown := format.Countdown(until, m.now())
		b.WriteString("\n  " + warnStyle.Render(
			fmt.Sprintf("Rate limit exceeded. Try again in %s", countdown)) + "\n")
	case StateSuccess:
		m.renderProfile(&b)
	}

	if m.notice != "" {
		b.WriteString("\n  " + noticeStyle.Render(m.notice) + "\n")
	}

	if remaining, _, ok := m.svc.Limits().Snapshot(); ok && m.svc.Limits().ShouldWarn() {
		b.WriteString("\n  " + warnStyle.Render(
			fmt.Sprintf("API rate limit low: %d requests remaining", remaining)) + "\n")
	}

	b.WriteString(footerStyle.Render("\n  " + m.footerHint()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) footerHint() string {
	if m.input.Focused() {
		return "enter search · esc browse · ctrl+c quit"
	}
	return "tab switch pane · j/k move · b bookmark · / search · q quit"
}

func (m Model) renderProfile(b *strings.Builder) {
	u := m.profile.User

	b.WriteString("\n  " + nameStyle.Render(u.DisplayName()))
	if u.Name != "" && u.Name != u.Login {
		b.WriteString(dimStyle.Render("  @" + u.Login))
	}
	if m.marks.Contains(u.Login) {
		b.WriteString(starStyle.Render("  ★"))
	}
	b.WriteString("\n")

	if u.Bio != "" {
		b.WriteString("  " + dimStyle.Render(u.Bio) + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d repos · %d followers · %d following\n",
		u.PublicRepos, u.Followers, u.Following)))

	b.WriteString("\n  " + m.renderTabs() + "\n\n")

	switch m.pane {
	case PaneRepositories:
		m.renderRepositories(b)
	case PaneInsights:
		m.renderInsights(b)
	case PaneBookmarks:
		m.renderBookmarks(b)
	}
}

func (m Model) renderTabs() string {
	labels := []string{"Repositories", "Insights", "Bookmarks"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if Pane(i) == m.pane {
			parts[i] = tabActiveStyle.Render(label)
		} else {
			parts[i] = tabInactiveStyle.Render(label)
		}
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func (m Model) renderRepositories(b *strings.Builder) {
	repos := m.profile.Repositories
	if len(repos) == 0 {
		b.WriteString("  " + dimStyle.Render("No public repositories") + "\n")
		return
	}

	// While the search box is focused, show only a short preview.
	if m.input.Focused() && len(repos) > constants.PopularRepoCount {
		for _, repo := range repos[:constants.PopularRepoCount] {
			b.WriteString("    " + m.repoLine(repo) + "\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("    ... and %d more (esc to browse)\n",
			len(repos)-constants.PopularRepoCount)))
		return
	}

	start, end := window(m.repoCursor, len(repos), maxVisibleRows)
	for i := start; i < end; i++ {
		line := m.repoLine(repos[i])
		if i == m.repoCursor && !m.input.Focused() {
			b.WriteString("  " + selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}
	if len(repos) > maxVisibleRows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %d-%d of %d\n", start+1, end, len(repos))))
	}
}

func (m Model) renderInsights(b *strings.Builder) {
	summary := insights.Summarize(m.profile.Repositories)

	b.WriteString("  " + nameStyle.Render("Languages") + "\n")
	if len(summary.Languages) == 0 {
		b.WriteString("    " + dimStyle.Render("none detected") + "\n")
	}
	for _, lc := range summary.Languages {
		b.WriteString(fmt.Sprintf("    %s %2d repos  %s %d\n",
			langStyle.Render(fmt.Sprintf("%-14s", lc.Language)),
			lc.Count, starStyle.Render("★"), lc.TotalStars))
	}

	b.WriteString("\n  " + nameStyle.Render("Most starred") + "\n")
	for _, leader := range summary.StarLeaders {
		name, _ := format.TruncateToWidth(leader.Name, 28)
		b.WriteString(fmt.Sprintf("    %-28s %s %d\n", name, starStyle.Render("★"), leader.Stars))
	}

	b.WriteString("\n  " + dimStyle.Render(fmt.Sprintf("%d stars · %d forks · %d languages total",
		summary.TotalStars, summary.TotalForks, summary.LanguageCount)) + "\n")
}

func (m Model) renderBookmarks(b *strings.Builder) {
	saved := m.marks.List()
	if len(saved) == 0 {
		b.WriteString("  " + dimStyle.Render("No bookmarks yet. Press b on a profile to save it.") + "\n")
		return
	}

	for i, mark := range saved {
		line := fmt.Sprintf("%-20s %s", mark.Login,
			dimStyle.Render(mark.BookmarkedAt.Format("Jan 2 15:04")))
		if i == m.bookmarkCursor && !m.input.Focused() {
			b.WriteString("  " + selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}
	b.WriteString(dimStyle.Render("\n    enter open · b remove\n"))
}

func (m Model) repoLine(repo model.Repository) string {
	lang := repo.Language
	if lang == "" {
		lang = "-"
	}
	name, _ := format.TruncateToWidth(repo.Name, 28)
	lang, _ = format.TruncateToWidth(lang, 12)
	return fmt.Sprintf("%-28s %-12s %s %-6d %s",
		name, lang,
		starStyle.Render("★"), repo.Stars,
		dimStyle.Render(format.FormatAge(m.now().Sub(repo.UpdatedAt))))
}

// window returns the half-open row range keeping cursor visible.
func window(cursor, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func pluralRepos(n int) string {
	if n == 1 {
		return "Loaded 1 repository"
	}
	return fmt.Sprintf("Loaded %d repositories", n)
}
