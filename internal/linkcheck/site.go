package linkcheck

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/template"
)

// Broken is a link whose target does not exist.
type Broken struct {
	// Page is the slash-separated path of the referring file, relative to the
	// directory that was checked.
	Page   string
	URL    string
	Reason string
}

func (b Broken) String() string {
	return b.Page + ": " + b.URL + " (" + b.Reason + ")"
}

const (
	reasonMissing     = "target does not exist"
	reasonOutsideBase = "outside base path"
	reasonEscapes     = "escapes site root"
)

// CheckSite checks every internal link in the .html files below outputDir.
// Root-relative links must start with basePath; the prefix is stripped before
// resolving. Directory targets resolve to their index.html. Results are sorted
// by page, then URL.
func CheckSite(outputDir, basePath string) ([]Broken, error) {
	base := template.NormalizeBasePath(basePath)
	var broken []Broken

	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		page := filepath.ToSlash(rel)

		f, err := os.Open(filepath.Clean(p))
		if err != nil {
			return err
		}
		links, err := ExtractLinks(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		for _, l := range links {
			if reason := resolveSiteLink(outputDir, page, base, l.URL); reason != "" {
				broken = append(broken, Broken{Page: page, URL: l.URL, Reason: reason})
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.FileSystemError("walk site").WithCause(err).
			WithContext("dir", outputDir).
			Build()
	}
	sortBroken(broken)
	return broken, nil
}

// resolveSiteLink returns an empty string when u resolves, else the reason it
// does not.
func resolveSiteLink(root, page, base, u string) string {
	if IsExternal(u) {
		return ""
	}
	target := stripRef(u)
	if target == "" {
		return ""
	}

	var rel string
	if strings.HasPrefix(target, "/") {
		if !strings.HasPrefix(target, base) && target+"/" != base {
			return reasonOutsideBase
		}
		rel = path.Clean(strings.TrimPrefix(target, strings.TrimSuffix(base, "/")))
	} else {
		rel = path.Join(path.Dir(page), target)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return reasonEscapes
		}
	}

	if exists(root, rel) {
		return ""
	}
	return reasonMissing
}

func exists(root, rel string) bool {
	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = os.Stat(filepath.Join(full, "index.html"))
	return err == nil
}

func sortBroken(b []Broken) {
	sort.SliceStable(b, func(i, j int) bool {
		if b[i].Page != b[j].Page {
			return b[i].Page < b[j].Page
		}
		return b[i].URL < b[j].URL
	})
}
