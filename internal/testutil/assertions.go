package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// SiteAssertions checks the state of a generated output directory.
type SiteAssertions struct {
	t    testing.TB
	root string
}

// AssertSite returns assertions rooted at dir.
func AssertSite(t testing.TB, dir string) *SiteAssertions {
	return &SiteAssertions{t: t, root: dir}
}

// HasFile fails unless rel exists and is a regular file.
func (a *SiteAssertions) HasFile(rel string) *SiteAssertions {
	a.t.Helper()
	assert.FileExists(a.t, filepath.Join(a.root, filepath.FromSlash(rel)))
	return a
}

// NoFile fails if rel exists.
func (a *SiteAssertions) NoFile(rel string) *SiteAssertions {
	a.t.Helper()
	assert.NoFileExists(a.t, filepath.Join(a.root, filepath.FromSlash(rel)))
	return a
}

// FileContains fails unless rel contains want.
func (a *SiteAssertions) FileContains(rel, want string) *SiteAssertions {
	a.t.Helper()
	data, err := os.ReadFile(filepath.Join(a.root, filepath.FromSlash(rel)))
	if !assert.NoError(a.t, err) {
		return a
	}
	assert.Contains(a.t, string(data), want, "file %s", rel)
	return a
}

// Files lists every regular file below the root as sorted slash paths.
func (a *SiteAssertions) Files() []string {
	a.t.Helper()
	var files []string
	err := filepath.WalkDir(a.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	assert.NoError(a.t, err)
	sort.Strings(files)
	return files
}

// HasExactly fails unless the root holds exactly the given files.
func (a *SiteAssertions) HasExactly(rels ...string) *SiteAssertions {
	a.t.Helper()
	want := append([]string(nil), rels...)
	sort.Strings(want)
	assert.Equal(a.t, want, a.Files(), "files below %s", a.root)
	return a
}

// Pages lists the generated .html files.
func (a *SiteAssertions) Pages() []string {
	a.t.Helper()
	var pages []string
	for _, f := range a.Files() {
		if strings.HasSuffix(f, ".html") {
			pages = append(pages, f)
		}
	}
	return pages
}
