// Package inline turns raw block text into an ordered sequence of typed spans.
//
// Tokenization runs a fixed pipeline: "**" bold, "_" italic, "`" code, then
// image references and finally link references. Every stage only splits Plain
// spans; spans already classified by an earlier stage pass through unchanged,
// which is why emphasis does not nest.
package inline

import "fmt"

// Kind classifies a span.
type Kind int

const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a typed fragment of inline text. Target holds the URL of Link and
// Image spans and is empty for every other kind.
type Span struct {
	Text   string
	Kind   Kind
	Target string
}

// PlainSpan returns a Plain span.
func PlainSpan(text string) Span { return Span{Text: text, Kind: Plain} }

// LinkSpan returns a Link span.
func LinkSpan(text, url string) Span { return Span{Text: text, Kind: Link, Target: url} }

// ImageSpan returns an Image span whose Text is the alt text.
func ImageSpan(alt, url string) Span { return Span{Text: alt, Kind: Image, Target: url} }

func (s Span) String() string {
	if s.Kind == Link || s.Kind == Image {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.Target)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}

// AllPlain reports whether every span is Plain.
func AllPlain(spans []Span) bool {
	for _, s := range spans {
		if s.Kind != Plain {
			return false
		}
	}
	return true
}
