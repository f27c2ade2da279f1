package htmlnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_String(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  string
	}{
		{"nil", nil, ""},
		{"empty", Attributes{}, ""},
		{"single", Attrs("href", "https://www.google.com"), ` href="https://www.google.com"`},
		{"insertion order", Attrs("href", "https://www.google.com", "target", "_blank"), ` href="https://www.google.com" target="_blank"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attrs.String())
		})
	}
}

func TestAttributes_SetReplacesInPlace(t *testing.T) {
	attrs := Attrs("src", "a.png", "alt", "a")
	attrs = attrs.Set("src", "b.png")
	assert.Equal(t, ` src="b.png" alt="a"`, attrs.String())

	v, ok := attrs.Get("alt")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = attrs.Get("missing")
	assert.False(t, ok)
}

func TestRender_Leaf(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"bare text", Text("This is a text node"), "This is a text node"},
		{"bare text keeps markup", Text("<b>raw</b> & more"), "<b>raw</b> & more"},
		{"bold", Tagged("b", "Bold text"), "<b>Bold text</b>"},
		{"link", Tagged("a", "Click me", Attribute{Key: "href", Value: "https://www.example.com"}), `<a href="https://www.example.com">Click me</a>`},
		{"empty value", Tagged("li", ""), "<li></li>"},
		{"image", Image("https://example.com/image.png", "Alt text"), `<img src="https://example.com/image.png" alt="Alt text" />`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Element(t *testing.T) {
	tree := NewElement("div",
		NewElement("p", Text("Normal "), Tagged("b", "bold"), Text(" text")),
		NewElement("ul", Tagged("li", "one"), Tagged("li", "two")),
	)
	got, err := Render(tree)
	require.NoError(t, err)
	assert.Equal(t, "<div><p>Normal <b>bold</b> text</p><ul><li>one</li><li>two</li></ul></div>", got)
}

func TestRender_ElementAttributes(t *testing.T) {
	el := &Element{Tag: "section", Attrs: Attrs("class", "intro"), Children: []Node{Text("x")}}
	got, err := Render(el)
	require.NoError(t, err)
	assert.Equal(t, `<section class="intro">x</section>`, got)
}

func TestRender_Errors(t *testing.T) {
	t.Run("value missing", func(t *testing.T) {
		_, err := Render(&Leaf{Tag: "p"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValueMissing))

		var rerr *RenderError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, "p", rerr.Tag)
	})

	t.Run("tag missing", func(t *testing.T) {
		_, err := Render(&Element{Children: []Node{Text("x")}})
		assert.True(t, errors.Is(err, ErrTagMissing))
	})

	t.Run("no children", func(t *testing.T) {
		_, err := Render(NewElement("div"))
		assert.True(t, errors.Is(err, ErrNoChildren))
		assert.Contains(t, err.Error(), "<div>")
	})

	t.Run("nested failure propagates", func(t *testing.T) {
		_, err := Render(NewElement("div", Text("ok"), NewElement("ul")))
		assert.True(t, errors.Is(err, ErrNoChildren))
	})

	t.Run("nil node", func(t *testing.T) {
		_, err := Render(nil)
		assert.True(t, errors.Is(err, ErrValueMissing))
	})
}
