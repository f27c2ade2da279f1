// Package site turns a content directory of Markdown pages into a static
// HTML site.
package site

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/linkcheck"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/manifest"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/template"
)

// Generator builds the site described by a configuration.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	manifest *manifest.Manifest
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder reports build metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithManifest keeps page fingerprints in m instead of reading the manifest
// file at the start of every build.
func WithManifest(m *manifest.Manifest) Option {
	return func(g *Generator) { g.manifest = m }
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build generates the whole site. Any page failure aborts the build.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	start := g.now()
	report := newReport(uuid.NewString(), start)
	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Starting site build",
		slog.String("content_dir", g.cfg.ContentDir),
		slog.String("output_dir", g.cfg.OutputDir),
		slog.Bool("incremental", g.cfg.Build.Incremental))

	err := g.build(ctx, log, report)

	report.Duration = g.now().Sub(start)
	report.Outcome = outcomeFor(err)
	g.recorder.ObserveBuildDuration(report.Duration)
	g.recorder.IncBuildOutcome(report.Outcome)

	if err != nil {
		log.Error("Site build failed", logfields.Error(err))
		return report, err
	}
	log.Info("Site build complete",
		slog.Int("pages", report.Pages),
		slog.Int("skipped", report.Skipped),
		slog.Int("assets", report.Assets),
		logfields.Bytes(report.Bytes),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (g *Generator) build(ctx context.Context, log *slog.Logger, report *Report) error {
	tmpl, err := template.LoadOrDefault(g.cfg.Template)
	if err != nil {
		return err
	}

	m, err := g.loadManifest()
	if err != nil {
		return err
	}
	incremental := g.cfg.Build.Incremental
	basePath := template.NormalizeBasePath(g.cfg.BasePath)
	if kept := m.Prepare(report.BuildID, tmpl.Hash(), basePath, report.Start); incremental && !kept {
		log.Info("Template or base path changed, rendering every page")
	}

	if err := g.stage(report, StageClean, func() error {
		if incremental {
			return os.MkdirAll(g.cfg.OutputDir, 0o755)
		}
		return Clean(g.cfg.OutputDir)
	}); err != nil {
		return errors.FileSystemError("prepare output directory").WithCause(err).
			WithContext("dir", g.cfg.OutputDir).
			Build()
	}

	if err := g.stage(report, StageStatic, func() error {
		n, size, err := CopyTree(g.cfg.StaticDir, g.cfg.OutputDir)
		report.Assets += n
		report.Bytes += size
		g.recorder.AddOutputBytes(size)
		return err
	}); err != nil {
		return errors.FileSystemError("copy static files").WithCause(err).
			WithContext("dir", g.cfg.StaticDir).
			Build()
	}

	seen := map[string]struct{}{}
	if err := g.stage(report, StagePages, func() error {
		return g.buildPages(ctx, log, report, tmpl, m, seen)
	}); err != nil {
		return err
	}

	if err := g.stage(report, StagePrune, func() error {
		return g.prune(log, report, m, seen)
	}); err != nil {
		return errors.FileSystemError("remove stale pages").WithCause(err).Build()
	}

	if err := m.Save(filepath.Join(g.cfg.OutputDir, manifest.FileName)); err != nil {
		return errors.BuildError("save manifest").WithCause(err).Build()
	}

	if !g.cfg.Build.CheckLinks {
		return nil
	}
	return g.stage(report, StageLinks, func() error {
		broken, err := linkcheck.CheckSite(g.cfg.OutputDir, basePath)
		if err != nil {
			return err
		}
		report.BrokenLinks = len(broken)
		for _, b := range broken {
			log.Warn("Broken link", logfields.Page(b.Page), logfields.URL(b.URL), slog.String("reason", b.Reason))
		}
		if len(broken) > 0 {
			return errors.NewError(errors.CategoryLinks, fmt.Sprintf("%d broken links", len(broken))).
				UserAction().
				WithContext("count", len(broken)).
				Build()
		}
		return nil
	})
}

func (g *Generator) buildPages(ctx context.Context, log *slog.Logger, report *Report, tmpl template.Template, m *manifest.Manifest, seen map[string]struct{}) error {
	sources, err := discover(g.cfg.ContentDir, g.cfg.Build.Exclude)
	if err != nil {
		return errors.FileSystemError("walk content").WithCause(err).
			WithContext("dir", g.cfg.ContentDir).
			Build()
	}
	log.Debug("Discovered content", logfields.Count(len(sources)))

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(src.OutputRel()))

		if !src.IsMarkdown() {
			n, err := copyFile(src.Path, dst, 0o644)
			if err != nil {
				return errors.FileSystemError(src.Rel+": copy asset").WithCause(err).Build()
			}
			report.Assets++
			report.Bytes += n
			g.recorder.AddOutputBytes(n)
			continue
		}

		pageStart := g.now()
		result, n, err := g.buildPage(src, dst, tmpl, m, seen)
		g.recorder.ObservePageDuration(g.now().Sub(pageStart))
		g.recorder.IncPageResult(result)
		if err != nil {
			return err
		}
		switch result {
		case metrics.PageRendered:
			report.Pages++
			report.Bytes += n
			g.recorder.AddOutputBytes(n)
			log.Debug("Rendered page", logfields.Page(src.Rel), logfields.Bytes(n))
		case metrics.PageSkipped:
			if _, ok := seen[src.Rel]; ok {
				report.Skipped++
			} else {
				report.Drafts++
			}
		}
	}
	return nil
}

// buildPage renders one page unless it is an unpublished draft or an
// incremental build finds it unchanged.
func (g *Generator) buildPage(src source, dst string, tmpl template.Template, m *manifest.Manifest, seen map[string]struct{}) (metrics.PageResult, int64, error) {
	data, err := os.ReadFile(filepath.Clean(src.Path))
	if err != nil {
		return metrics.PageFailed, 0, errors.FileSystemError(src.Rel+": read page").WithCause(err).
			WithContext("file", src.Rel).
			Build()
	}
	page, err := frontmatter.Parse(data)
	if err != nil {
		return metrics.PageFailed, 0, frontmatterError(err, src.Rel)
	}
	if page.Meta.Draft && !g.cfg.Build.Drafts {
		slog.Debug("Skipping draft", logfields.Page(src.Rel))
		return metrics.PageSkipped, 0, nil
	}

	seen[src.Rel] = struct{}{}
	fp := manifest.Fingerprint(string(page.Raw), string(page.Body))
	if g.cfg.Build.Incremental && m.Unchanged(src.Rel, fp) && fileExists(dst) {
		return metrics.PageSkipped, 0, nil
	}

	n, err := g.writePage(page, src.Rel, dst, tmpl)
	if err != nil {
		return metrics.PageFailed, 0, err
	}
	m.Record(src.Rel, fp)
	return metrics.PageRendered, n, nil
}

// prune forgets pages that no longer exist and deletes their output.
func (g *Generator) prune(log *slog.Logger, report *Report, m *manifest.Manifest, seen map[string]struct{}) error {
	for _, rel := range m.Prune(seen) {
		out := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(source{Rel: rel}.OutputRel()))
		if err := os.Remove(out); err != nil && !stderrors.Is(err, os.ErrNotExist) {
			return err
		}
		report.Removed = append(report.Removed, rel)
		log.Info("Removed stale page", logfields.Page(rel))
	}
	return nil
}

func (g *Generator) loadManifest() (*manifest.Manifest, error) {
	if g.manifest != nil {
		return g.manifest, nil
	}
	if !g.cfg.Build.Incremental {
		return manifest.New(), nil
	}
	m, err := manifest.Load(filepath.Join(g.cfg.OutputDir, manifest.FileName))
	if err != nil {
		slog.Warn("Ignoring unreadable manifest", logfields.Error(err))
		return manifest.New(), nil
	}
	return m, nil
}

// stage runs fn and records its duration and result.
func (g *Generator) stage(report *Report, name string, fn func() error) error {
	start := g.now()
	err := fn()
	d := g.now().Sub(start)
	report.StageDurations[name] = d
	g.recorder.ObserveStageDuration(name, d)
	g.recorder.IncStageResult(name, stageResult(err))
	slog.Debug("Stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000))
	return err
}

func stageResult(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

func outcomeFor(err error) metrics.BuildOutcomeLabel {
	switch stageResult(err) {
	case metrics.ResultSuccess:
		return metrics.BuildOutcomeSuccess
	case metrics.ResultCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
