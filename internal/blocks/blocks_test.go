package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "paragraphs and list",
			doc:  "\nThis is **bolded** paragraph\n\nThis is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line\n\n- This is a list\n- with items\n",
			want: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{name: "empty", doc: "", want: nil},
		{name: "only whitespace", doc: "   \n\n   \n\n   ", want: nil},
		{name: "only newlines", doc: "\n\n\n\n", want: nil},
		{name: "single block", doc: "one block", want: []string{"one block"}},
		{name: "excessive newlines", doc: "Block 1\n\n\n\nBlock 2\n\n\n\n\nBlock 3", want: []string{"Block 1", "Block 2", "Block 3"}},
		{name: "surrounding whitespace", doc: "   Block 1   \n\n   Block 2   \n\n   Block 3   ", want: []string{"Block 1", "Block 2", "Block 3"}},
		{
			name: "code block",
			doc:  "```\ncode block\nwith multiple lines\n```\n\nRegular paragraph",
			want: []string{"```\ncode block\nwith multiple lines\n```", "Regular paragraph"},
		},
		{
			name: "blank line inside fence",
			doc:  "```\na\n\nb\n```",
			want: []string{"```\na\n\nb\n```"},
		},
		{
			name: "several blank lines inside fence",
			doc:  "intro\n\n```\nfunc a() {}\n\n\n\nfunc b() {}\n```\n\noutro",
			want: []string{"intro", "```\nfunc a() {}\n\n\n\nfunc b() {}\n```", "outro"},
		},
		{
			name: "inline fence on one line",
			doc:  "```x```\n\nafter",
			want: []string{"```x```", "after"},
		},
		{
			name: "unclosed fence splits as text",
			doc:  "```\na\n\nb",
			want: []string{"```\na", "b"},
		},
		{
			name: "single newlines kept",
			doc:  "Block with\nmultiple lines\nin one block\n\nAnother block",
			want: []string{"Block with\nmultiple lines\nin one block", "Another block"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.doc))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text  string
		kind  Kind
		level int
	}{
		{"This is a regular paragraph with some text.", Paragraph, 0},
		{"This is a paragraph\nwith multiple lines\nbut no special formatting", Paragraph, 0},
		{"# Heading 1", Heading, 1},
		{"## Heading 2", Heading, 2},
		{"### Heading 3", Heading, 3},
		{"#### Heading 4", Heading, 4},
		{"##### Heading 5", Heading, 5},
		{"###### Heading 6", Heading, 6},
		{"####### Too many hashes", Paragraph, 0},
		{"#Heading without space", Paragraph, 0},
		{"# This is a heading with **bold** and _italic_", Heading, 1},
		{"#  Heading with multiple spaces", Heading, 1},
		{"####", Paragraph, 0},
		{"```code```", Code, 0},
		{"```\ncode block\nwith multiple lines\n```", Code, 0},
		{"```\ndef hello():\n    print('world')\n```", Code, 0},
		{"```python\ndef hello():\n    pass\n```", Code, 0},
		{"```\n```", Code, 0},
		{"``````", Paragraph, 0},
		{"``code``", Paragraph, 0},
		{"````code````", Paragraph, 0},
		{"> This is a quote", Quote, 0},
		{"> First line of quote\n> Second line of quote\n> Third line", Quote, 0},
		{"> First line\nSecond line without >", Paragraph, 0},
		{">\n> Content here", Quote, 0},
		{"- First item", UnorderedList, 0},
		{"- First item\n- Second item\n- Third item", UnorderedList, 0},
		{"- First item\nSecond item without dash", Paragraph, 0},
		{"-First item", Paragraph, 0},
		{"- \n- Item", UnorderedList, 0},
		{"1. First item", OrderedList, 0},
		{"1. First item\n2. Second item\n3. Third item", OrderedList, 0},
		{"1. First\n2. Second\n3. Third\n4. Fourth\n5. Fifth\n6. Sixth\n7. Seventh\n8. Eighth\n9. Ninth\n10. Tenth\n11. Eleventh", OrderedList, 0},
		{"1. \n2. Item", OrderedList, 0},
		{"2. Starts at two", Paragraph, 0},
		{"1. a\n3. b", Paragraph, 0},
		{"1. First\n2. Second\n4. Skips three", Paragraph, 0},
		{"1. First\n1. Repeats", Paragraph, 0},
		{"1. First item\nNot a numbered item", Paragraph, 0},
		{"1.First item", Paragraph, 0},
		{"0. Starts at zero", Paragraph, 0},
		{"-1. Negative number", Paragraph, 0},
		{"- Unordered item\n1. Ordered item", Paragraph, 0},
		{"99999999999999999999999. overflow", Paragraph, 0},
		{"", Paragraph, 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b := Classify(tt.text)
			assert.Equal(t, tt.kind, b.Kind, "kind of %q", tt.text)
			assert.Equal(t, tt.level, b.Level)
			assert.Equal(t, tt.text, b.Text)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, text := range []string{"# A", "```\nx\n```", "> q", "- a", "1. a\n2. b", "plain"} {
		first := Classify(text)
		for range 3 {
			assert.Equal(t, first, Classify(first.Text))
		}
	}
}

func TestParse(t *testing.T) {
	doc := strings.Join([]string{
		"# Main Heading",
		"## Subheading",
		"This is a **paragraph** with _formatting_.",
		"```\ncode block here\n```",
		">This is a quote",
		"- Unordered item 1\n- Unordered item 2",
		"1. Ordered item 1\n2. Ordered item 2",
	}, "\n\n")

	got := Parse(doc)
	require.Len(t, got, 7)

	kinds := make([]Kind, 0, len(got))
	for _, b := range got {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []Kind{Heading, Heading, Paragraph, Code, Quote, UnorderedList, OrderedList}, kinds)
	assert.Equal(t, 2, got[1].Level)
	assert.Empty(t, Parse("  \n\n  "))
}

func TestOrderedItem(t *testing.T) {
	n, rest, ok := OrderedItem("12. twelve")
	require.True(t, ok)
	assert.Equal(t, 12, n)
	assert.Equal(t, "twelve", rest)

	_, _, ok = OrderedItem(". nothing")
	assert.False(t, ok)
	_, _, ok = OrderedItem("3.x")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ordered_list", OrderedList.String())
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestParse_FenceWithBlankLinesBetweenParagraphs(t *testing.T) {
	doc := "First paragraph.\n\n```\nline one\n\nline three\n```\n\n# Title\n\nLast paragraph."
	got := Parse(doc)
	require.Len(t, got, 4)
	assert.Equal(t, []Kind{Paragraph, Code, Heading, Paragraph},
		[]Kind{got[0].Kind, got[1].Kind, got[2].Kind, got[3].Kind})
	assert.Equal(t, "```\nline one\n\nline three\n```", got[1].Text)
	assert.Equal(t, "Last paragraph.", got[3].Text)
}
