package tui

import (
	"time"

	"github.com/gitcher/gitcher/internal/model"
	"github.com/gitcher/gitcher/internal/service"
)

// fetchResultMsg carries the outcome of a profile fetch. The seq field
// ties the result to the submission that started it so results from
// superseded searches are discarded.
type fetchResultMsg struct {
	seq     int
	profile *model.Profile
	source  service.Source
	err     error
}

// clearNoticeMsg clears the transient notice line. Its seq must match
// the notice currently shown, otherwise a newer notice stays visible.
type clearNoticeMsg struct {
	seq int
}

// cooldownTickMsg drives the once-a-second countdown while searches
// are blocked by the rate limit.
type cooldownTickMsg time.Time

// submitInitialMsg triggers the search supplied on the command line.
type submitInitialMsg struct{}
