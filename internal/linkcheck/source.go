package linkcheck

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
)

// SourceLinkKind says which Markdown construct produced a link.
type SourceLinkKind string

const (
	SourceLinkInline     SourceLinkKind = "inline"
	SourceLinkImage      SourceLinkKind = "image"
	SourceLinkAuto       SourceLinkKind = "auto"
	SourceLinkDefinition SourceLinkKind = "reference_definition"
)

// SourceLink is a link destination found in Markdown source.
type SourceLink struct {
	Kind        SourceLinkKind
	Destination string
}

// ExtractSourceLinks lists the link destinations of a Markdown body. It parses
// with a CommonMark parser, so it also sees reference-style links that the
// page compiler leaves as text.
func ExtractSourceLinks(body []byte) []SourceLink {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var links []SourceLink
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, SourceLink{Kind: SourceLinkAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, SourceLink{Kind: SourceLinkImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, SourceLink{Kind: SourceLinkInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, SourceLink{Kind: SourceLinkDefinition, Destination: string(ref.Destination())})
	}
	return links
}

// SourceOptions selects the pages CheckSource looks at. They mirror the
// build settings so that only published pages are checked.
type SourceOptions struct {
	// StaticDir, when non-empty, is consulted for targets that are not content.
	StaticDir string
	// Exclude holds doublestar globs matched against content-relative paths.
	Exclude []string
	// Drafts includes pages whose frontmatter sets draft: true.
	Drafts bool
}

// CheckSource checks the internal links of every published Markdown file
// below contentDir. Hidden entries, excluded paths and drafts are skipped the
// way the build skips them. A link to x.html is satisfied by x.md, since that
// is the page it will be generated from.
func CheckSource(contentDir string, opts SourceOptions) ([]Broken, error) {
	var broken []Broken

	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == contentDir {
			return nil
		}
		rel, err := filepath.Rel(contentDir, p)
		if err != nil {
			return err
		}
		page := filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") || matchesAny(opts.Exclude, page) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}

		data, err := os.ReadFile(filepath.Clean(p))
		if err != nil {
			return err
		}
		parsed, err := frontmatter.Parse(data)
		if err != nil {
			return errors.MarkdownError(page + ": invalid frontmatter").WithCause(err).
				WithContext("file", page).
				Build()
		}
		if parsed.Meta.Draft && !opts.Drafts {
			return nil
		}

		for _, l := range ExtractSourceLinks(parsed.Body) {
			if reason := resolveSourceLink(contentDir, opts.StaticDir, page, l.Destination); reason != "" {
				broken = append(broken, Broken{Page: page, URL: l.Destination, Reason: reason})
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.FileSystemError("walk content").WithCause(err).
			WithContext("dir", contentDir).
			Build()
	}
	sortBroken(broken)
	return broken, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func resolveSourceLink(contentDir, staticDir, page, dest string) string {
	if IsExternal(dest) {
		return ""
	}
	target := stripRef(dest)
	if target == "" {
		return ""
	}

	var rel string
	if strings.HasPrefix(target, "/") {
		rel = path.Clean(target)
	} else {
		rel = path.Join(path.Dir(page), target)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return reasonEscapes
		}
	}

	candidates := []string{rel}
	if strings.HasSuffix(rel, ".html") {
		candidates = append(candidates, strings.TrimSuffix(rel, ".html")+".md")
	}
	for _, c := range candidates {
		if sourceExists(contentDir, c) {
			return ""
		}
		if staticDir != "" && sourceExists(staticDir, c) {
			return ""
		}
	}
	return reasonMissing
}

func sourceExists(root, rel string) bool {
	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	for _, index := range []string{"index.md", "index.html"} {
		if _, err := os.Stat(filepath.Join(full, index)); err == nil {
			return true
		}
	}
	return false
}
