package site

import (
	"time"

	"git.home.luguber.info/inful/mdsite/internal/metrics"
)

// Stage names used for logging and metrics.
const (
	StageClean  = "clean"
	StageStatic = "static"
	StagePages  = "pages"
	StagePrune  = "prune"
	StageLinks  = "links"
)

// Report summarizes a site build.
type Report struct {
	BuildID string
	// Pages is the number of pages compiled and written.
	Pages int
	// Skipped counts pages left untouched by an incremental build.
	Skipped int
	// Drafts counts pages left out because they are marked as drafts.
	Drafts int
	// Assets counts copied static and non-Markdown content files.
	Assets  int
	Bytes   int64
	Removed []string
	// BrokenLinks is filled when link checking is enabled.
	BrokenLinks    int
	Outcome        metrics.BuildOutcomeLabel
	StageDurations map[string]time.Duration
	Start          time.Time
	Duration       time.Duration
}

func newReport(id string, start time.Time) *Report {
	return &Report{
		BuildID:        id,
		StageDurations: map[string]time.Duration{},
		Start:          start,
	}
}
