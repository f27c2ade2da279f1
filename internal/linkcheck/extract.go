// Package linkcheck verifies that links inside a generated site, or inside
// the Markdown sources it is generated from, point at files that exist.
package linkcheck

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Link is a URL found in an HTML document.
type Link struct {
	URL  string
	Tag  string // a or img
	Attr string // href or src
	Text string // anchor text or image alt
}

// ExtractLinks returns every a[href] and img[src] in document order.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryLinks, "parse HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, Link{URL: href, Tag: "a", Attr: "href", Text: textOf(n)})
				}
			case "img":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, Link{URL: src, Tag: "img", Attr: "src", Text: getAttr(n, "alt")})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// IsExternal reports whether u leaves the site or only addresses a fragment.
func IsExternal(u string) bool {
	switch {
	case strings.HasPrefix(u, "#"),
		strings.HasPrefix(u, "//"),
		strings.HasPrefix(u, "mailto:"),
		strings.HasPrefix(u, "tel:"),
		strings.HasPrefix(u, "data:"),
		strings.HasPrefix(u, "javascript:"):
		return true
	}
	if i := strings.Index(u, ":"); i > 0 {
		// A scheme must appear before any path separator.
		return !strings.ContainsAny(u[:i], "/?#")
	}
	return false
}

// stripRef removes the query string and fragment.
func stripRef(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
