package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/template"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File     string `arg:"" help:"Markdown file to render" type:"existingfile"`
	Template string `short:"t" help:"Template file; the built-in template is used when it does not exist" default:"template.html"`
	BasePath string `short:"b" name:"base-path" help:"Base path for root-relative URLs" default:"/"`
	Fragment bool   `short:"f" help:"Print only the compiled body, without template or title"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	page, err := site.ReadPage(r.File)
	if err != nil {
		return err
	}

	if r.Fragment {
		html, err := site.CompileBody(r.File, string(page.Body))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(g.out(), html)
		return nil
	}

	tmpl, err := template.LoadOrDefault(r.Template)
	if err != nil {
		return err
	}
	html, err := site.RenderPage(r.File, page, tmpl, r.BasePath)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(g.out(), html)
	return nil
}

// TitleCmd implements the 'title' command.
type TitleCmd struct {
	File string `arg:"" help:"Markdown file" type:"existingfile"`
}

func (t *TitleCmd) Run(g *Global, _ *CLI) error {
	page, err := site.ReadPage(t.File)
	if err != nil {
		return err
	}
	pageTitle, err := site.ResolveTitle(t.File, page)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.out(), pageTitle)
	return nil
}
