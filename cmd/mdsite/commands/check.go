package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/linkcheck"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir      string `arg:"" optional:"" help:"Directory to check (defaults to output_dir, or content_dir with --source)"`
	Source   bool   `short:"s" help:"Check the Markdown sources instead of the generated HTML"`
	BasePath string `short:"b" name:"base-path" help:"Base path the site is served below (overrides base_path)"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if c.BasePath != "" {
		cfg.BasePath = c.BasePath
	}

	var broken []linkcheck.Broken
	if c.Source {
		dir := cfg.ContentDir
		if c.Dir != "" {
			dir = c.Dir
		}
		broken, err = linkcheck.CheckSource(dir, linkcheck.SourceOptions{
			StaticDir: cfg.StaticDir,
			Exclude:   cfg.Build.Exclude,
			Drafts:    cfg.Build.Drafts,
		})
	} else {
		dir := cfg.OutputDir
		if c.Dir != "" {
			dir = c.Dir
		}
		broken, err = linkcheck.CheckSite(dir, cfg.BasePath)
	}
	if err != nil {
		return err
	}

	out := g.out()
	for _, b := range broken {
		_, _ = fmt.Fprintln(out, b.String())
	}
	if len(broken) > 0 {
		return errors.NewError(errors.CategoryLinks, fmt.Sprintf("%d broken links", len(broken))).
			UserAction().
			Build()
	}
	_, _ = fmt.Fprintln(out, "No broken links found")
	return nil
}
