package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestSerialization(t *testing.T) {
	m := New()
	m.Prepare("build-123", "tmpl-hash", "/docs/", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	m.Record("index.md", "fp-1")
	m.Record("guide/setup.md", "fp-2")

	data, err := m.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"build_id": "build-123"`)
	assert.Contains(t, string(data), `"template_hash": "tmpl-hash"`)

	restored, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, m.BuildID, restored.BuildID)
	assert.True(t, m.Timestamp.Equal(restored.Timestamp))
	assert.Equal(t, m.Pages, restored.Pages)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte("{not json"))
	require.Error(t, err)

	m, err := FromJSON([]byte(`{"build_id":"x"}`))
	require.NoError(t, err)
	assert.NotNil(t, m.Pages)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, m.Pages)

	m.Prepare("b1", "h", "/", time.Now())
	m.Record("a.md", Fingerprint("", "# A\n"))
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b1", loaded.BuildID)
	assert.True(t, loaded.Unchanged("a.md", Fingerprint("", "# A\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be gone")
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("title: A", "# A\n")
	assert.NotEmpty(t, a)
	assert.Equal(t, a, Fingerprint("title: A", "# A\n"))
	assert.NotEqual(t, a, Fingerprint("title: B", "# A\n"))
	assert.NotEqual(t, a, Fingerprint("title: A", "# B\n"))
}

func TestPrepare_ResetsOnTemplateOrBaseChange(t *testing.T) {
	m := New()
	assert.False(t, m.Prepare("b1", "h1", "/", time.Now()))
	m.Record("a.md", "fp")

	assert.True(t, m.Prepare("b2", "h1", "/", time.Now()))
	assert.True(t, m.Unchanged("a.md", "fp"))

	assert.False(t, m.Prepare("b3", "h2", "/", time.Now()))
	assert.False(t, m.Unchanged("a.md", "fp"))

	m.Record("a.md", "fp")
	assert.False(t, m.Prepare("b4", "h2", "/docs/", time.Now()))
	assert.Empty(t, m.Pages)
}

func TestUnchangedAndPrune(t *testing.T) {
	m := New()
	m.Record("a.md", "1")
	m.Record("b.md", "2")
	m.Record("c/d.md", "3")

	assert.True(t, m.Unchanged("a.md", "1"))
	assert.False(t, m.Unchanged("a.md", "x"))
	assert.False(t, m.Unchanged("z.md", "1"))

	removed := m.Prune(map[string]struct{}{"a.md": {}})
	assert.Equal(t, []string{"b.md", "c/d.md"}, removed)
	assert.Equal(t, map[string]string{"a.md": "1"}, m.Pages)
}
