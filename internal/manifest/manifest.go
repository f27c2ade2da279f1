// Package manifest records what the previous build produced so incremental
// builds can skip pages whose inputs did not change.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/inful/mdfp"
)

// FileName is the manifest file written at the root of the output directory.
const FileName = ".mdsite-manifest.json"

// Manifest maps content-relative page paths to their fingerprints.
type Manifest struct {
	BuildID      string            `json:"build_id"`
	Timestamp    time.Time         `json:"timestamp"`
	TemplateHash string            `json:"template_hash"`
	BasePath     string            `json:"base_path"`
	Pages        map[string]string `json:"pages"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Pages: map[string]string{}}
}

// Fingerprint identifies a page by its raw frontmatter and body.
func Fingerprint(frontmatter, body string) string {
	return mdfp.CalculateFingerprintFromParts(frontmatter, body)
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromJSON(data)
}

// Save writes the manifest atomically.
func (m *Manifest) Save(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("create manifest temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename manifest: %w", err)
	}
	return nil
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Pages == nil {
		m.Pages = map[string]string{}
	}
	return m, nil
}

// Prepare starts a new build. Pages recorded under a different template or
// base path are forgotten, so every page renders again. It reports whether
// the recorded pages were kept.
func (m *Manifest) Prepare(buildID, templateHash, basePath string, now time.Time) bool {
	kept := m.TemplateHash == templateHash && m.BasePath == basePath
	if !kept {
		m.Pages = map[string]string{}
	}
	m.BuildID = buildID
	m.Timestamp = now.UTC()
	m.TemplateHash = templateHash
	m.BasePath = basePath
	return kept
}

// Unchanged reports whether rel was recorded with fingerprint fp.
func (m *Manifest) Unchanged(rel, fp string) bool {
	prev, ok := m.Pages[rel]
	return ok && prev == fp
}

// Record stores the fingerprint of rel.
func (m *Manifest) Record(rel, fp string) {
	m.Pages[rel] = fp
}

// Prune drops every page not in seen and returns the dropped paths, sorted.
func (m *Manifest) Prune(seen map[string]struct{}) []string {
	var removed []string
	for rel := range m.Pages {
		if _, ok := seen[rel]; !ok {
			removed = append(removed, rel)
			delete(m.Pages, rel)
		}
	}
	sort.Strings(removed)
	return removed
}
