package site

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/markdown"
	"git.home.luguber.info/inful/mdsite/internal/template"
	"git.home.luguber.info/inful/mdsite/internal/title"
)

// RenderPage turns a parsed page into a complete HTML document.
// name identifies the page in errors.
func RenderPage(name string, page *frontmatter.Page, tmpl template.Template, basePath string) (string, error) {
	pageTitle, err := ResolveTitle(name, page)
	if err != nil {
		return "", err
	}
	content, err := CompileBody(name, string(page.Body))
	if err != nil {
		return "", err
	}
	return tmpl.Render(pageTitle, content, basePath), nil
}

// ResolveTitle returns the trimmed frontmatter title, or the first level-one
// heading of the body when the frontmatter has none.
func ResolveTitle(name string, page *frontmatter.Page) (string, error) {
	if t := strings.TrimSpace(page.Meta.Title); t != "" {
		return t, nil
	}
	t, err := title.Extract(string(page.Body))
	if err != nil {
		return "", errors.MarkdownError(name+": page has no title").
			WithCause(err).
			WithContext("file", name).
			Build()
	}
	return t, nil
}

// CompileBody renders a Markdown body to HTML. Tree errors such as an empty
// document are render-classified; grammar errors are markdown-classified.
func CompileBody(name, body string) (string, error) {
	html, err := markdown.ToHTML(body)
	if err == nil {
		return html, nil
	}
	var re *htmlnode.RenderError
	if stderrors.As(err, &re) {
		return "", errors.WrapError(err, errors.CategoryRender, name+": render page").
			WithContext("file", name).
			Build()
	}
	return "", errors.MarkdownError(name+": compile markdown").
		WithCause(err).
		WithContext("file", name).
		Build()
}

// ReadPage reads and splits the Markdown file at path.
func ReadPage(path string) (*frontmatter.Page, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.FileSystemError(path+": read page").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	page, err := frontmatter.Parse(data)
	if err != nil {
		return nil, frontmatterError(err, path)
	}
	return page, nil
}

// GeneratePage compiles the Markdown file src into the HTML document dst and
// returns the number of bytes written.
func (g *Generator) GeneratePage(src, dst string, tmpl template.Template) (int64, error) {
	page, err := ReadPage(src)
	if err != nil {
		return 0, err
	}
	return g.writePage(page, src, dst, tmpl)
}

func (g *Generator) writePage(page *frontmatter.Page, src, dst string, tmpl template.Template) (int64, error) {
	html, err := RenderPage(src, page, tmpl, g.cfg.BasePath)
	if err != nil {
		return 0, err
	}
	if err := writeFile(dst, []byte(html)); err != nil {
		return 0, errors.FileSystemError(dst+": write page").
			WithCause(err).
			WithContext("file", dst).
			Build()
	}
	return int64(len(html)), nil
}

func frontmatterError(err error, src string) error {
	return errors.MarkdownError(src+": invalid frontmatter").
		WithCause(err).
		WithContext("file", src).
		Build()
}
