// Package blocks splits a Markdown document into blank-line separated blocks
// and classifies each one by its structural kind.
package blocks

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the structural kind of a block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	fence        = "```"
	maxHeading   = 6
	listItemMark = "- "
)

// Block is one classified chunk of a document. Level is 1-6 for headings and
// 0 for every other kind.
type Block struct {
	Text  string
	Kind  Kind
	Level int
}

// Split breaks doc on blank lines ("\n\n"), trims each piece and drops the
// pieces that end up empty. Single newlines inside a piece are kept. Blank
// lines inside a ``` fence do not end the block; a fence that is never closed
// is split as if it were plain text.
func Split(doc string) []string {
	var out []string
	emit := func(piece string) {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}

	var pending []string
	inFence := false
	for _, piece := range strings.Split(doc, "\n\n") {
		inFence = toggleFences(inFence, piece)
		if inFence {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			piece = strings.Join(append(pending, piece), "\n\n")
			pending = nil
		}
		emit(piece)
	}
	for _, piece := range pending {
		emit(piece)
	}
	return out
}

// toggleFences walks the lines of piece and returns whether a fence is still
// open at its end. A line holding both fences, such as ```x```, opens nothing.
func toggleFences(inFence bool, piece string) bool {
	for _, line := range strings.Split(piece, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, fence) {
			continue
		}
		if !inFence && len(trimmed) > 2*len(fence) && strings.HasSuffix(trimmed, fence) {
			continue
		}
		inFence = !inFence
	}
	return inFence
}

// Parse splits doc and classifies every block, preserving source order.
func Parse(doc string) []Block {
	pieces := Split(doc)
	out := make([]Block, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, Classify(p))
	}
	return out
}

// Classify determines the kind of a single block. The first matching rule
// wins: heading, code, quote, unordered list, ordered list, paragraph.
func Classify(text string) Block {
	if level := HeadingLevel(text); level > 0 {
		return Block{Text: text, Kind: Heading, Level: level}
	}
	if isCode(text) {
		return Block{Text: text, Kind: Code}
	}
	lines := strings.Split(text, "\n")
	switch {
	case allLines(lines, func(l string) bool { return strings.HasPrefix(l, ">") }):
		return Block{Text: text, Kind: Quote}
	case allLines(lines, func(l string) bool { return strings.HasPrefix(l, listItemMark) }):
		return Block{Text: text, Kind: UnorderedList}
	case isOrderedList(lines):
		return Block{Text: text, Kind: OrderedList}
	}
	return Block{Text: text, Kind: Paragraph}
}

// HeadingLevel returns the number of leading '#' when text starts with 1-6 of
// them followed by a space, and 0 otherwise.
func HeadingLevel(text string) int {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeading || n >= len(text) || text[n] != ' ' {
		return 0
	}
	return n
}

// isCode accepts exactly three backticks on each side. The byte right after
// the opening fence and the byte right before the closing fence must not be
// backticks, which rejects two and four-or-more backtick runs.
func isCode(text string) bool {
	n := len(text)
	if n <= 2*len(fence) {
		return false
	}
	if !strings.HasPrefix(text, fence) || !strings.HasSuffix(text, fence) {
		return false
	}
	return text[3] != '`' && text[n-4] != '`'
}

// OrderedItem splits an ordered list line into its number and remainder.
func OrderedItem(line string) (int, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || !strings.HasPrefix(line[i:], ". ") {
		return 0, "", false
	}
	num, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, "", false
	}
	return num, line[i+2:], true
}

func isOrderedList(lines []string) bool {
	for i, l := range lines {
		num, _, ok := OrderedItem(l)
		if !ok || num != i+1 {
			return false
		}
	}
	return len(lines) > 0
}

func allLines(lines []string, pred func(string) bool) bool {
	for _, l := range lines {
		if !pred(l) {
			return false
		}
	}
	return len(lines) > 0
}
