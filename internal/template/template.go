// Package template fills the page template with a title and rendered content
// and rewrites root-relative URLs for sites served below a base path.
package template

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// Default is used when the configured template file does not exist.
const Default = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{ Title }}</title>
    <link href="/index.css" rel="stylesheet" />
  </head>
  <body>
    <article>{{ Content }}</article>
  </body>
</html>
`

// Template is a page template held in memory.
type Template struct {
	Source string
	// Path is the file the template was loaded from, empty for Default.
	Path string
}

// New wraps source as a template.
func New(source string) Template {
	return Template{Source: source}
}

// Load reads the template at path. A template without the content
// placeholder is rejected.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, errors.FileSystemError("read template").WithCause(err).
			WithContext("path", path).
			Build()
	}
	t := Template{Source: string(data), Path: path}
	if !strings.Contains(t.Source, ContentPlaceholder) {
		return Template{}, errors.TemplateError("template has no " + ContentPlaceholder + " placeholder").
			WithContext("path", path).
			Build()
	}
	return t, nil
}

// LoadOrDefault loads path, falling back to Default when the file is missing.
func LoadOrDefault(path string) (Template, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(Default), nil
	}
	return Load(path)
}

// Render substitutes every placeholder occurrence and rewrites root-relative
// URLs for basePath.
func (t Template) Render(title, content, basePath string) string {
	out := strings.ReplaceAll(t.Source, TitlePlaceholder, title)
	out = strings.ReplaceAll(out, ContentPlaceholder, content)
	return Rewrite(out, basePath)
}

// Hash identifies the template source. Incremental builds re-render every
// page when it changes.
func (t Template) Hash() string {
	sum := sha256.Sum256([]byte(t.Source))
	return hex.EncodeToString(sum[:])
}

// NormalizeBasePath maps "" to "/" and makes sure any other value ends in "/".
func NormalizeBasePath(raw string) string {
	if raw == "" || raw == "/" {
		return "/"
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}

// Rewrite points every href="/ and src="/ at basePath. It is a no-op for "/".
func Rewrite(html, basePath string) string {
	base := NormalizeBasePath(basePath)
	if base == "/" {
		return html
	}
	r := strings.NewReplacer(`href="/`, `href="`+base, `src="/`, `src="`+base)
	return r.Replace(html)
}
