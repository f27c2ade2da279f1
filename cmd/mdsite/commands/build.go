package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides output_dir)"`
	BasePath    string `short:"b" name:"base-path" help:"Base path the site is served below (overrides base_path)"`
	Incremental bool   `short:"i" help:"Only re-render pages that changed since the last build"`
	CheckLinks  bool   `name:"check-links" help:"Fail the build when a generated page links to a missing file"`
	Drafts      bool   `help:"Include pages marked draft: true"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return RunBuild(ctx, g, cfg)
}

// apply layers the flags over the configuration.
func (b *BuildCmd) apply(cfg *config.Config) {
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	if b.BasePath != "" {
		cfg.BasePath = b.BasePath
	}
	cfg.Build.Incremental = cfg.Build.Incremental || b.Incremental
	cfg.Build.CheckLinks = cfg.Build.CheckLinks || b.CheckLinks
	cfg.Build.Drafts = cfg.Build.Drafts || b.Drafts
}

// RunBuild generates the site for cfg and prints a summary.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config) error {
	report, err := site.NewGenerator(cfg).Build(ctx)
	if err != nil {
		return err
	}
	out := g.out()
	_, _ = fmt.Fprintf(out, "Built %d pages (%d unchanged, %d drafts skipped) and %d assets into %s\n",
		report.Pages, report.Skipped, report.Drafts, report.Assets, cfg.OutputDir)
	_, _ = fmt.Fprintf(out, "Wrote %s in %s\n", humanize.Bytes(uint64(report.Bytes)), report.Duration.Round(1e6))
	return nil
}
