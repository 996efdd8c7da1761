// Package insights aggregates repository data for display: language
// breakdown, star leaders, recent activity, and size distribution.
package insights

import (
	"sort"

	"github.com/gitcher/gitcher/internal/model"
)

// Aggregation limits, matching what fits on screen.
const (
	maxLanguages   = 8
	maxStarLeaders = 10
	activityWindow = 12
)

// Size category thresholds in kilobytes.
const (
	mediumSizeKB = 1000
	largeSizeKB  = 10000
)

// LanguageCount is the repository count and star total for one language.
type LanguageCount struct {
	Language   string
	Count      int
	TotalStars int
}

// StarLeader is a repository ranked by star count.
type StarLeader struct {
	Name  string
	Stars int
	Forks int
}

// MonthActivity is the number of repository updates in one month.
type MonthActivity struct {
	Month      string // e.g. "Jan 25"
	Updates    int
	TotalStars int
}

// SizeBucket is the number of repositories in one size category.
type SizeBucket struct {
	Category string // Small, Medium, Large
	Count    int
}

// Summary holds every aggregation computed from a repository list.
type Summary struct {
	Languages        []LanguageCount
	StarLeaders      []StarLeader
	MonthlyActivity  []MonthActivity
	SizeDistribution []SizeBucket

	TotalStars    int
	TotalForks    int
	LanguageCount int
	TotalSizeKB   int
}

// Summarize computes all aggregations for a repository list. The input
// slice is not modified.
func Summarize(repos []model.Repository) Summary {
	return Summary{
		Languages:        Languages(repos),
		StarLeaders:      StarLeaders(repos),
		MonthlyActivity:  MonthlyActivity(repos),
		SizeDistribution: SizeDistribution(repos),
		TotalStars:       totalStars(repos),
		TotalForks:       totalForks(repos),
		LanguageCount:    distinctLanguages(repos),
		TotalSizeKB:      totalSize(repos),
	}
}

// Languages returns per-language repository counts and star totals,
// sorted by count descending and capped at the display limit.
// Repositories without a primary language are skipped.
func Languages(repos []model.Repository) []LanguageCount {
	byLang := make(map[string]*LanguageCount)
	order := make([]string, 0)

	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		lc, ok := byLang[r.Language]
		if !ok {
			lc = &LanguageCount{Language: r.Language}
			byLang[r.Language] = lc
			order = append(order, r.Language)
		}
		lc.Count++
		lc.TotalStars += r.Stars
	}

	out := make([]LanguageCount, 0, len(order))
	for _, lang := range order {
		out = append(out, *byLang[lang])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > maxLanguages {
		out = out[:maxLanguages]
	}
	return out
}

// StarLeaders returns the top repositories by star count, skipping
// those with no stars at all.
func StarLeaders(repos []model.Repository) []StarLeader {
	starred := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		if r.Stars > 0 {
			starred = append(starred, r)
		}
	}
	sort.SliceStable(starred, func(i, j int) bool {
		return starred[i].Stars > starred[j].Stars
	})

	if len(starred) > maxStarLeaders {
		starred = starred[:maxStarLeaders]
	}

	out := make([]StarLeader, 0, len(starred))
	for _, r := range starred {
		out = append(out, StarLeader{Name: r.Name, Stars: r.Stars, Forks: r.Forks})
	}
	return out
}

// MonthlyActivity buckets the most recently updated repositories by
// update month, oldest month first.
func MonthlyActivity(repos []model.Repository) []MonthActivity {
	sorted := make([]model.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
	})

	if len(sorted) > activityWindow {
		sorted = sorted[len(sorted)-activityWindow:]
	}

	var out []MonthActivity
	for _, r := range sorted {
		month := r.UpdatedAt.Format("Jan 06")
		if n := len(out); n > 0 && out[n-1].Month == month {
			out[n-1].Updates++
			out[n-1].TotalStars += r.Stars
			continue
		}
		out = append(out, MonthActivity{Month: month, Updates: 1, TotalStars: r.Stars})
	}
	return out
}

// SizeDistribution buckets repositories into Small (≤1MB), Medium
// (≤10MB), and Large categories by reported size. Zero-size
// repositories are skipped.
func SizeDistribution(repos []model.Repository) []SizeBucket {
	var out []SizeBucket
	add := func(category string) {
		for i := range out {
			if out[i].Category == category {
				out[i].Count++
				return
			}
		}
		out = append(out, SizeBucket{Category: category, Count: 1})
	}

	for _, r := range repos {
		if r.Size <= 0 {
			continue
		}
		switch {
		case r.Size > largeSizeKB:
			add("Large")
		case r.Size > mediumSizeKB:
			add("Medium")
		default:
			add("Small")
		}
	}
	return out
}

// DistinctLanguages returns the primary languages appearing in the
// list, in first-seen order.
func DistinctLanguages(repos []model.Repository) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range repos {
		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		out = append(out, r.Language)
	}
	return out
}

func totalStars(repos []model.Repository) int {
	sum := 0
	for _, r := range repos {
		sum += r.Stars
	}
	return sum
}

func totalForks(repos []model.Repository) int {
	sum := 0
	for _, r := range repos {
		sum += r.Forks
	}
	return sum
}

func distinctLanguages(repos []model.Repository) int {
	return len(DistinctLanguages(repos))
}

func totalSize(repos []model.Repository) int {
	sum := 0
	for _, r := range repos {
		sum += r.Size
	}
	return sum
}
