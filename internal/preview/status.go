package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/site"
)

// buildStatus tracks the result of the most recent build.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastReport   *site.Report
	hasGoodBuild bool
	builds       int
}

func (bs *buildStatus) record(report *site.Report, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.builds++
	bs.lastReport = report
	bs.lastError = err
	if err == nil {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) snapshot() (report *site.Report, err error, hasGoodBuild bool, builds int) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastReport, bs.lastError, bs.hasGoodBuild, bs.builds
}

// statusResponse is served while the last build succeeded.
type statusResponse struct {
	Status     string    `json:"status"`
	BuildID    string    `json:"build_id,omitempty"`
	Builds     int       `json:"builds"`
	Pages      int       `json:"pages"`
	Skipped    int       `json:"skipped"`
	Assets     int       `json:"assets"`
	Bytes      int64     `json:"bytes"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at,omitempty"`
}

// handleStatus reports the last build as JSON. A failed build is written
// through the error adapter so clients see its category and file.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, err, _, builds := s.status.snapshot()
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	resp := statusResponse{Status: "pending", Builds: builds}
	if report != nil {
		resp = statusResponse{
			Status:     "ok",
			BuildID:    report.BuildID,
			Builds:     builds,
			Pages:      report.Pages,
			Skipped:    report.Skipped,
			Assets:     report.Assets,
			Bytes:      report.Bytes,
			DurationMS: report.Duration.Milliseconds(),
			StartedAt:  report.Start,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
