package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/template"
)

const samplePage = `# Welcome to mdsite

This page was generated by **mdsite init**. Edit _content/index.md_ and run
` + "`mdsite build`" + ` to regenerate the site.

- Headings, paragraphs and quotes
- Lists, ` + "`code`" + ` and [links](/index.html)
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing files"`
	Dir   string `short:"d" help:"Project directory" default:"."`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	cfgPath := root.Config
	if i.Dir != "." {
		cfgPath = filepath.Join(i.Dir, filepath.Base(root.Config))
	}
	return RunInit(g, i.Dir, cfgPath, i.Force)
}

// RunInit writes a default configuration, the default template, and a sample
// page into dir.
func RunInit(g *Global, dir, cfgPath string, force bool) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, force); err != nil {
		return err
	}

	page, err := frontmatter.Compose(map[string]any{"title": "Welcome"}, []byte(samplePage))
	if err != nil {
		return fmt.Errorf("compose sample page: %w", err)
	}

	defaults := config.Defaults()
	files := []struct{ path, body string }{
		{filepath.Join(dir, defaults.Template), template.Default},
		{filepath.Join(dir, defaults.ContentDir, "index.md"), string(page)},
	}
	for _, f := range files {
		written, err := writeIfAbsent(f.path, f.body, force)
		if err != nil {
			return err
		}
		if written {
			_, _ = fmt.Fprintf(out, "Wrote %s\n", f.path)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, defaults.StaticDir), 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}
	_, _ = fmt.Fprintln(out, "Initialized successfully")
	return nil
}

func writeIfAbsent(path, body string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
