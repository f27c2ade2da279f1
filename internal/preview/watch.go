package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// watchSet decides which filesystem events cause a rebuild. Directories in
// trees are watched recursively; files are watched through their parent
// directory and matched by name.
type watchSet struct {
	trees  []string
	files  map[string]struct{}
	ignore []string
}

func newWatchSet(trees, files, ignore []string) *watchSet {
	ws := &watchSet{files: map[string]struct{}{}}
	for _, t := range trees {
		if abs, err := filepath.Abs(t); err == nil {
			ws.trees = append(ws.trees, abs)
		}
	}
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			ws.files[abs] = struct{}{}
		}
	}
	for _, i := range ignore {
		if abs, err := filepath.Abs(i); err == nil {
			ws.ignore = append(ws.ignore, abs)
		}
	}
	return ws
}

// attach registers every watched directory with w. Missing trees are skipped.
func (ws *watchSet) attach(w *fsnotify.Watcher) {
	for _, root := range ws.trees {
		if st, err := os.Stat(root); err != nil || !st.IsDir() {
			slog.Warn("Not watching missing directory", logfields.Path(root))
			continue
		}
		addDirsRecursive(w, root)
	}
	dirs := map[string]struct{}{}
	for f := range ws.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			slog.Warn("Watch add failed", logfields.Path(d), logfields.Error(err))
		}
	}
}

// relevant reports whether an event on path should trigger a rebuild.
func (ws *watchSet) relevant(path string) bool {
	if shouldIgnoreEvent(path) {
		return false
	}
	for _, i := range ws.ignore {
		if within(path, i) {
			return false
		}
	}
	if _, ok := ws.files[path]; ok {
		return true
	}
	for _, root := range ws.trees {
		if within(path, root) {
			return true
		}
	}
	return false
}

// handleEvent starts watching newly created directories and reports
// whether ev should trigger a rebuild.
func (ws *watchSet) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if !ws.relevant(ev.Name) {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(w, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	return true
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// shouldIgnoreEvent filters hidden files and editor scratch files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db", base == "4913":
		return true
	}
	return false
}
