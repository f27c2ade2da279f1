package logfields

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyPage       = "page"
	KeyCount      = "count"
	KeyBytes      = "bytes"
	KeyURL        = "url"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Page(rel string) slog.Attr       { return slog.String(KeyPage, rel) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }

// Bytes logs a size in human form (e.g. "1.2 kB").
func Bytes(n int64) slog.Attr {
	if n < 0 {
		n = 0
	}
	return slog.String(KeyBytes, humanize.Bytes(uint64(n)))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
