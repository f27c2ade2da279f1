package site

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// source is a file found below the content directory.
type source struct {
	Path string // as found on disk
	Rel  string // slash-separated, relative to the content directory
}

// IsMarkdown reports whether the source is compiled into a page.
func (s source) IsMarkdown() bool {
	return strings.EqualFold(filepath.Ext(s.Rel), ".md")
}

// OutputRel is the slash-separated output path: pages get an .html
// extension, assets keep their name.
func (s source) OutputRel() string {
	if !s.IsMarkdown() {
		return s.Rel
	}
	return strings.TrimSuffix(s.Rel, filepath.Ext(s.Rel)) + ".html"
}

// discover walks root in lexical order. Hidden entries and entries matching
// one of the exclude globs are skipped; an excluded directory is not entered.
func discover(root string, exclude []string) ([]source, error) {
	var found []source
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") || excluded(rel, exclude) {
			slog.Debug("Skipping content entry", logfields.Path(rel))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		found = append(found, source{Path: p, Rel: rel})
		return nil
	})
	return found, err
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
