package linkcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/testutil"
)

func TestExtractLinks(t *testing.T) {
	doc := `<div><p>see <a href="/a.html">the <b>A</b> page</a> and <img src="/x.png" alt="pic" /></p>` +
		`<a>no href</a><img alt="no src" /></div>`
	links, err := ExtractLinks(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{URL: "/a.html", Tag: "a", Attr: "href", Text: "the A page"},
		{URL: "/x.png", Tag: "img", Attr: "src", Text: "pic"},
	}, links)
}

func TestIsExternal(t *testing.T) {
	tests := map[string]bool{
		"https://example.com":   true,
		"http://x/y":            true,
		"//cdn.example.com/a":   true,
		"mailto:me@example.com": true,
		"#top":                  true,
		"/local.html":           false,
		"docs/page.html":        false,
		"../up.html":            false,
		"dir/a:b.html":          false,
	}
	for u, want := range tests {
		t.Run(u, func(t *testing.T) {
			assert.Equal(t, want, IsExternal(u))
		})
	}
}

func TestCheckSite(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"index.html": `<a href="/about.html">about</a><a href="/blog/">blog</a>` +
			`<a href="/missing.html">gone</a><a href="https://example.com">ext</a>` +
			`<img src="/img/logo.png" alt="logo">`,
		"about.html":       `<a href="index.html#top">home</a><a href="../outside.html">up</a>`,
		"blog/index.html":  `<a href="post.html?x=1">post</a><a href="nope.html">nope</a>`,
		"blog/post.html":   `<a href="/">root</a>`,
		"img/logo.png":     "png",
		"notes/readme.txt": "not html",
	})

	broken, err := CheckSite(root, "/")
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "about.html", URL: "../outside.html", Reason: reasonEscapes},
		{Page: "blog/index.html", URL: "nope.html", Reason: reasonMissing},
		{Page: "index.html", URL: "/missing.html", Reason: reasonMissing},
	}, broken)
}

func TestCheckSite_BasePath(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"index.html": `<a href="/docs/guide.html">g</a><a href="/docs">home</a><a href="/guide.html">wrong</a>`,
		"guide.html": `ok`,
	})

	broken, err := CheckSite(root, "/docs")
	require.NoError(t, err)
	require.Len(t, broken, 1)
	assert.Equal(t, "/guide.html", broken[0].URL)
	assert.Equal(t, reasonOutsideBase, broken[0].Reason)
	assert.Equal(t, "index.html: /guide.html (outside base path)", broken[0].String())
}

func TestExtractSourceLinks(t *testing.T) {
	body := []byte("# T\n\nA [link](a.md) and ![img](/i.png) and <https://auto.example>.\n\n" +
		"A [ref][r].\n\n[r]: /ref.html\n")
	links := ExtractSourceLinks(body)
	assert.Equal(t, []SourceLink{
		{Kind: SourceLinkInline, Destination: "a.md"},
		{Kind: SourceLinkImage, Destination: "/i.png"},
		{Kind: SourceLinkAuto, Destination: "https://auto.example"},
		{Kind: SourceLinkInline, Destination: "/ref.html"},
		{Kind: SourceLinkDefinition, Destination: "/ref.html"},
	}, links)
}

func TestCheckSource(t *testing.T) {
	content := t.TempDir()
	static := t.TempDir()
	testutil.WriteTree(t, content, map[string]string{
		"index.md":       "---\ntitle: Home\n---\n# Home\n\n[guide](/guide/intro.html) [blog](blog/) [bad](missing.html)\n",
		"guide/intro.md": "# Intro\n\n![logo](/logo.png) [home](../index.html) [x](https://example.com)\n",
		"blog/index.md":  "# Blog\n\n[escape](../../etc/passwd)\n",
	})
	testutil.WriteTree(t, static, map[string]string{"logo.png": "png"})

	broken, err := CheckSource(content, SourceOptions{StaticDir: static})
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "blog/index.md", URL: "../../etc/passwd", Reason: reasonEscapes},
		{Page: "index.md", URL: "missing.html", Reason: reasonMissing},
	}, broken)
}

func TestCheckSource_BadFrontmatter(t *testing.T) {
	content := t.TempDir()
	testutil.WriteTree(t, content, map[string]string{"bad.md": "---\ntitle: x\n# no close\n"})
	_, err := CheckSource(content, SourceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontmatter")
}

func TestCheckSource_SkipsUnpublishedPages(t *testing.T) {
	content := t.TempDir()
	testutil.WriteTree(t, content, map[string]string{
		"index.md":          "# Home\n\n[ok](index.html)\n",
		".notes/todo.md":    "# Todo\n\n[gone](missing.html)\n",
		".hidden.md":        "# Hidden\n\n[gone](missing.html)\n",
		"wip/idea.md":       "# Idea\n\n[gone](missing.html)\n",
		"scratch.tmp.md":    "# Tmp\n\n[gone](missing.html)\n",
		"draft.md":          "---\ndraft: true\n---\n# Draft\n\n[gone](missing.html)\n",
		"blog/published.md": "# Post\n\n[gone](missing.html)\n",
	})
	opts := SourceOptions{Exclude: []string{"wip/**", "**/*.tmp.md"}}

	broken, err := CheckSource(content, opts)
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "blog/published.md", URL: "missing.html", Reason: reasonMissing},
	}, broken)

	opts.Drafts = true
	broken, err = CheckSource(content, opts)
	require.NoError(t, err)
	assert.Equal(t, []Broken{
		{Page: "blog/published.md", URL: "missing.html", Reason: reasonMissing},
		{Page: "draft.md", URL: "missing.html", Reason: reasonMissing},
	}, broken)
}
