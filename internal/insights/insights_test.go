package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/gitcher/gitcher/internal/model"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestLanguages(t *testing.T) {
	repos := []model.Repository{
		{Name: "a", Language: "Go", Stars: 10},
		{Name: "b", Language: "Go", Stars: 5},
		{Name: "c", Language: "Rust", Stars: 20},
		{Name: "d", Language: ""},
	}

	got := Languages(repos)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Language != "Go" || got[0].Count != 2 || got[0].TotalStars != 15 {
		t.Errorf("first = %+v, want Go/2/15", got[0])
	}
	if got[1].Language != "Rust" || got[1].Count != 1 || got[1].TotalStars != 20 {
		t.Errorf("second = %+v, want Rust/1/20", got[1])
	}
}

func TestLanguagesCapped(t *testing.T) {
	var repos []model.Repository
	for i := 0; i < maxLanguages+3; i++ {
		repos = append(repos, model.Repository{
			Name:     fmt.Sprintf("repo%d", i),
			Language: fmt.Sprintf("Lang%d", i),
		})
	}

	if got := Languages(repos); len(got) != maxLanguages {
		t.Errorf("len = %d, want %d", len(got), maxLanguages)
	}
}

func TestStarLeaders(t *testing.T) {
	repos := []model.Repository{
		{Name: "low", Stars: 1},
		{Name: "zero", Stars: 0},
		{Name: "high", Stars: 100, Forks: 7},
	}

	got := StarLeaders(repos)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (zero-star repos skipped)", len(got))
	}
	if got[0].Name != "high" || got[0].Forks != 7 {
		t.Errorf("first = %+v, want high with 7 forks", got[0])
	}
	if got[1].Name != "low" {
		t.Errorf("second = %+v, want low", got[1])
	}
}

func TestStarLeadersCapped(t *testing.T) {
	var repos []model.Repository
	for i := 0; i < maxStarLeaders+5; i++ {
		repos = append(repos, model.Repository{Name: fmt.Sprintf("r%d", i), Stars: i + 1})
	}

	got := StarLeaders(repos)
	if len(got) != maxStarLeaders {
		t.Fatalf("len = %d, want %d", len(got), maxStarLeaders)
	}
	if got[0].Stars != maxStarLeaders+5 {
		t.Errorf("top stars = %d, want %d", got[0].Stars, maxStarLeaders+5)
	}
}

func TestMonthlyActivity(t *testing.T) {
	repos := []model.Repository{
		{Name: "a", UpdatedAt: date(2025, time.March), Stars: 3},
		{Name: "b", UpdatedAt: date(2025, time.January), Stars: 1},
		{Name: "c", UpdatedAt: date(2025, time.March), Stars: 2},
	}

	got := MonthlyActivity(repos)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Month != "Jan 25" || got[0].Updates != 1 {
		t.Errorf("first = %+v, want Jan 25 with 1 update", got[0])
	}
	if got[1].Month != "Mar 25" || got[1].Updates != 2 || got[1].TotalStars != 5 {
		t.Errorf("second = %+v, want Mar 25 with 2 updates and 5 stars", got[1])
	}
}

func TestMonthlyActivityWindow(t *testing.T) {
	var repos []model.Repository
	for i := 0; i < activityWindow+6; i++ {
		repos = append(repos, model.Repository{
			Name:      fmt.Sprintf("r%d", i),
			UpdatedAt: date(2024, time.January).AddDate(0, i, 0),
		})
	}

	got := MonthlyActivity(repos)
	total := 0
	for _, m := range got {
		total += m.Updates
	}
	if total != activityWindow {
		t.Errorf("updates counted = %d, want %d (only the most recent)", total, activityWindow)
	}
	if got[0].Month != "Jul 24" {
		t.Errorf("oldest month = %q, want Jul 24", got[0].Month)
	}
}

func TestSizeDistribution(t *testing.T) {
	repos := []model.Repository{
		{Name: "tiny", Size: 100},
		{Name: "small", Size: 1000},
		{Name: "medium", Size: 5000},
		{Name: "large", Size: 20000},
		{Name: "empty", Size: 0},
	}

	got := SizeDistribution(repos)
	counts := map[string]int{}
	for _, b := range got {
		counts[b.Category] = b.Count
	}

	if counts["Small"] != 2 {
		t.Errorf("Small = %d, want 2 (1000 KB is still small)", counts["Small"])
	}
	if counts["Medium"] != 1 {
		t.Errorf("Medium = %d, want 1", counts["Medium"])
	}
	if counts["Large"] != 1 {
		t.Errorf("Large = %d, want 1", counts["Large"])
	}
}

func TestSummarize(t *testing.T) {
	repos := []model.Repository{
		{Name: "a", Language: "Go", Stars: 10, Forks: 2, Size: 500, UpdatedAt: date(2025, time.May)},
		{Name: "b", Language: "Rust", Stars: 5, Forks: 1, Size: 1500, UpdatedAt: date(2025, time.June)},
	}

	s := Summarize(repos)
	if s.TotalStars != 15 {
		t.Errorf("TotalStars = %d, want 15", s.TotalStars)
	}
	if s.TotalForks != 3 {
		t.Errorf("TotalForks = %d, want 3", s.TotalForks)
	}
	if s.LanguageCount != 2 {
		t.Errorf("LanguageCount = %d, want 2", s.LanguageCount)
	}
	if s.TotalSizeKB != 2000 {
		t.Errorf("TotalSizeKB = %d, want 2000", s.TotalSizeKB)
	}
	if len(s.Languages) != 2 || len(s.StarLeaders) != 2 || len(s.MonthlyActivity) != 2 {
		t.Errorf("aggregations incomplete: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalStars != 0 || len(s.Languages) != 0 || len(s.SizeDistribution) != 0 {
		t.Errorf("empty input should produce an empty summary: %+v", s)
	}
}
