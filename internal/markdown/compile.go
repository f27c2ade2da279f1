// Package markdown compiles Markdown documents into htmlnode trees.
//
// A document is split into blocks (package blocks), each block is compiled by
// kind, and inline text goes through the span tokenizer (package inline). The
// result is a single div element with one child per block in source order.
package markdown

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/blocks"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/inline"
)

// RootTag wraps every compiled document.
const RootTag = "div"

// BlockError locates a compilation failure inside a document.
type BlockError struct {
	Index int
	Kind  blocks.Kind
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Compile converts doc into a div element holding one node per block.
// A document without blocks compiles to an empty div, which fails to render.
// The first failing block in source order determines the returned error.
func Compile(doc string) (*htmlnode.Element, error) {
	parsed := blocks.Parse(doc)
	root := &htmlnode.Element{Tag: RootTag, Children: make([]htmlnode.Node, 0, len(parsed))}
	for i, b := range parsed {
		n, err := CompileBlock(b)
		if err != nil {
			return nil, &BlockError{Index: i, Kind: b.Kind, Err: err}
		}
		root.Children = append(root.Children, n)
	}
	return root, nil
}

// ToHTML compiles and renders doc.
func ToHTML(doc string) (string, error) {
	root, err := Compile(doc)
	if err != nil {
		return "", err
	}
	return htmlnode.Render(root)
}

// CompileBlock converts a single classified block into a node.
func CompileBlock(b blocks.Block) (htmlnode.Node, error) {
	switch b.Kind {
	case blocks.Heading:
		return compileHeading(b)
	case blocks.Code:
		return compileCode(b.Text), nil
	case blocks.Quote:
		return compileQuote(b.Text)
	case blocks.UnorderedList:
		return compileList("ul", b.Text, func(line string) string {
			return strings.TrimPrefix(line, "- ")
		})
	case blocks.OrderedList:
		return compileList("ol", b.Text, func(line string) string {
			_, rest, _ := blocks.OrderedItem(line)
			return rest
		})
	case blocks.Paragraph:
		return compileInline("p", strings.Join(strings.Fields(b.Text), " "))
	default:
		return nil, fmt.Errorf("unknown block kind %s", b.Kind)
	}
}

func compileHeading(b blocks.Block) (htmlnode.Node, error) {
	level := b.Level
	if level == 0 {
		level = blocks.HeadingLevel(b.Text)
	}
	if level < 1 || level > 6 || len(b.Text) <= level {
		return nil, fmt.Errorf("invalid heading %q", b.Text)
	}
	return compileInline(fmt.Sprintf("h%d", level), b.Text[level+1:])
}

func compileQuote(text string) (htmlnode.Node, error) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimPrefix(l, ">")
		lines[i] = strings.TrimPrefix(l, " ")
	}
	return compileInline("blockquote", strings.Join(lines, " "))
}

func compileList(tag, text string, item func(line string) string) (htmlnode.Node, error) {
	lines := strings.Split(text, "\n")
	list := &htmlnode.Element{Tag: tag, Children: make([]htmlnode.Node, 0, len(lines))}
	for _, l := range lines {
		li, err := compileInline("li", item(l))
		if err != nil {
			return nil, err
		}
		list.Append(li)
	}
	return list, nil
}

// compileInline tokenizes text and wraps the spans in tag. When every span is
// Plain the result is a single tagged leaf holding the concatenated text.
func compileInline(tag, text string) (htmlnode.Node, error) {
	spans, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}
	if inline.AllPlain(spans) {
		var b strings.Builder
		for _, s := range spans {
			b.WriteString(s.Text)
		}
		return htmlnode.Tagged(tag, b.String()), nil
	}
	return &htmlnode.Element{Tag: tag, Children: SpanNodes(spans)}, nil
}

// SpanNodes maps spans to leaves, one per span, empty Plain spans included.
func SpanNodes(spans []inline.Span) []htmlnode.Node {
	out := make([]htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		out = append(out, SpanNode(s))
	}
	return out
}

// SpanNode maps a single span to its leaf.
func SpanNode(s inline.Span) htmlnode.Node {
	switch s.Kind {
	case inline.Bold:
		return htmlnode.Tagged("b", s.Text)
	case inline.Italic:
		return htmlnode.Tagged("i", s.Text)
	case inline.Code:
		return htmlnode.Tagged("code", s.Text)
	case inline.Link:
		return htmlnode.Tagged("a", s.Text, htmlnode.Attribute{Key: "href", Value: s.Target})
	case inline.Image:
		return htmlnode.Image(s.Target, s.Text)
	default:
		return htmlnode.Text(s.Text)
	}
}
