// Package testutil holds filesystem helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteTree writes files below root, keyed by slash-separated relative path.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), dirPerm))
		require.NoError(t, os.WriteFile(p, []byte(body), filePerm))
	}
}

// ReadFile returns the content of path and fails the test if it is unreadable.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Clean(path))
	require.NoError(t, err)
	return string(data)
}

// NewProject lays out a project below a temp dir: content from the given
// map, an empty static dir and tmpl as template.html. The returned config
// points at those paths and at public/ for output.
func NewProject(t testing.TB, content map[string]string, tmpl string) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.ContentDir = filepath.Join(root, "content")
	cfg.StaticDir = filepath.Join(root, "static")
	cfg.Template = filepath.Join(root, "template.html")
	cfg.OutputDir = filepath.Join(root, "public")

	WriteTree(t, cfg.ContentDir, content)
	require.NoError(t, os.MkdirAll(cfg.StaticDir, dirPerm))
	require.NoError(t, os.WriteFile(cfg.Template, []byte(tmpl), filePerm))
	return cfg
}
