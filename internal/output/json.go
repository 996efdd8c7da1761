package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gitcher/gitcher/internal/insights"
	"github.com/gitcher/gitcher/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format outputs the profile as JSON
func (f *JSONFormatter) Format(profile *model.Profile, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(profile)
}

// Export wraps the profile with aggregate metadata for file export.
type Export struct {
	User       model.UserProfile  `json:"user"`
	Repos      []model.Repository `json:"repos"`
	ExportedAt time.Time          `json:"exported_at"`
	TotalRepos int                `json:"total_repos"`
	TotalStars int                `json:"total_stars"`
	TotalForks int                `json:"total_forks"`
	Languages  []string           `json:"languages"`
}

// NewExport builds the export envelope for a profile.
func NewExport(profile *model.Profile, at time.Time) Export {
	summary := insights.Summarize(profile.Repositories)
	return Export{
		User:       profile.User,
		Repos:      profile.Repositories,
		ExportedAt: at,
		TotalRepos: len(profile.Repositories),
		TotalStars: summary.TotalStars,
		TotalForks: summary.TotalForks,
		Languages:  insights.DistinctLanguages(profile.Repositories),
	}
}

// WriteExportJSON writes the complete export envelope, indented for
// readability.
func WriteExportJSON(profile *model.Profile, at time.Time, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExport(profile, at))
}
