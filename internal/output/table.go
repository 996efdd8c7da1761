package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/gitcher/gitcher/internal/format"
	"github.com/gitcher/gitcher/internal/insights"
	"github.com/gitcher/gitcher/internal/model"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

var (
	headerColor = color.New(color.Bold)
	dimColor    = color.New(color.Faint)
	starColor   = color.New(color.FgYellow)
	langColor   = color.New(color.FgCyan)
)

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// Format outputs the user header followed by the repository table.
func (f *TableFormatter) Format(profile *model.Profile, w io.Writer) error {
	f.formatUser(profile.User, w)

	if len(profile.Repositories) == 0 {
		fmt.Fprintln(w, "No public repositories.")
		return nil
	}

	fmt.Fprintln(w)
	return f.formatRepos(profile.Repositories, w)
}

// formatUser prints the profile header block.
func (f *TableFormatter) formatUser(u model.UserProfile, w io.Writer) {
	name := u.DisplayName()
	fmt.Fprintf(w, "%s (@%s)\n", headerColor.Sprint(hyperlink(name, u.HTMLURL)), u.Login)
	if u.Bio != "" {
		fmt.Fprintln(w, u.Bio)
	}
	if u.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", u.Location)
	}
	fmt.Fprintf(w, "Repos: %d  Followers: %d  Following: %d  Joined: %s\n",
		u.PublicRepos, u.Followers, u.Following, u.CreatedAt.Format("Jan 2006"))
}

// formatRepos prints the repository table with a footer summary.
func (f *TableFormatter) formatRepos(repos []model.Repository, w io.Writer) error {
	// Column widths
	const (
		colName  = 28
		colLang  = 12
		colStars = 6
		colForks = 6
		colAge   = 5
	)

	// Header
	fmt.Fprintf(w, "%-*s  %-*s  %*s  %*s  %s\n",
		colName, "Repository",
		colLang, "Language",
		colStars, "Stars",
		colForks, "Forks",
		"Age")
	fmt.Fprintln(w, strings.Repeat("-", colName+colLang+colStars+colForks+colAge+8))

	for _, r := range repos {
		name, nameWidth := format.TruncateToWidth(r.Name, colName)
		linkedName := hyperlink(name, r.HTMLURL)
		linkedName = format.PadRight(linkedName, nameWidth, colName)

		lang := r.Language
		lang, langWidth := format.TruncateToWidth(lang, colLang)
		linkedLang := format.PadRight(langColor.Sprint(lang), langWidth, colLang)

		age := format.FormatAge(time.Since(r.UpdatedAt))

		fmt.Fprintf(w, "%s  %s  %s  %*d  %s\n",
			linkedName,
			linkedLang,
			starColor.Sprintf("%*d", colStars, r.Stars),
			colForks, r.Forks,
			age,
		)
	}

	printFooterSummary(repos, w)
	return nil
}

// printFooterSummary prints aggregate totals under the table.
func printFooterSummary(repos []model.Repository, w io.Writer) {
	summary := insights.Summarize(repos)
	fmt.Fprintln(w)
	fmt.Fprintln(w, dimColor.Sprintf("%d repositories, %d stars, %d forks, %d languages",
		len(repos), summary.TotalStars, summary.TotalForks, summary.LanguageCount))
}

// FormatInsights prints the aggregations as text sections.
func (f *TableFormatter) FormatInsights(repos []model.Repository, w io.Writer) error {
	summary := insights.Summarize(repos)

	if len(summary.Languages) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("Languages"))
		for _, lc := range summary.Languages {
			fmt.Fprintf(w, "  %-14s %3d repos  %5d stars\n", lc.Language, lc.Count, lc.TotalStars)
		}
		fmt.Fprintln(w)
	}

	if len(summary.StarLeaders) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("Top starred"))
		for _, leader := range summary.StarLeaders {
			name, _ := format.TruncateToWidth(leader.Name, 28)
			fmt.Fprintf(w, "  %-28s  %5d stars  %4d forks\n", name, leader.Stars, leader.Forks)
		}
		fmt.Fprintln(w)
	}

	if len(summary.MonthlyActivity) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("Recent activity"))
		for _, month := range summary.MonthlyActivity {
			fmt.Fprintf(w, "  %-8s %s (%d)\n", month.Month, strings.Repeat("#", month.Updates), month.Updates)
		}
		fmt.Fprintln(w)
	}

	if len(summary.SizeDistribution) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("Size distribution"))
		for _, bucket := range summary.SizeDistribution {
			fmt.Fprintf(w, "  %-8s %d\n", bucket.Category, bucket.Count)
		}
	}

	return nil
}
