// Package htmlnode provides the small HTML rendering tree produced by the
// Markdown compiler.
//
// A Node is either a Leaf (bare text, or a tagged element holding exactly one
// text value) or an Element (a tagged element wrapping an ordered sequence of
// child nodes). Rendering never escapes HTML-special characters: output is
// byte-for-byte whatever the source text contained.
package htmlnode

import "strings"

// Node is implemented by *Leaf and *Element only.
type Node interface {
	render(b *strings.Builder) error
	node()
}

// Attribute is a single key/value pair rendered as key="value".
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an insertion-ordered attribute list.
type Attributes []Attribute

// Attrs builds an attribute list from alternating key/value strings.
// A trailing key without a value is ignored.
func Attrs(kv ...string) Attributes {
	out := make(Attributes, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = out.Set(kv[i], kv[i+1])
	}
	return out
}

// Set replaces the value of an existing key in place or appends a new pair.
func (a Attributes) Set(key, value string) Attributes {
	for i := range a {
		if a[i].Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attribute{Key: key, Value: value})
}

// Get returns the value stored for key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// String renders the attributes with a single leading space, or "" when empty.
func (a Attributes) String() string {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
	return b.String()
}

// Leaf is a text node. With an empty Tag it renders its Value bare.
type Leaf struct {
	Tag   string
	Value *string
	Attrs Attributes
	// SelfClosing renders <tag attrs /> and ignores Value's content.
	SelfClosing bool
}

// Element is a tagged node wrapping child nodes.
type Element struct {
	Tag      string
	Children []Node
	Attrs    Attributes
}

func (*Leaf) node()    {}
func (*Element) node() {}

// Text returns an untagged leaf.
func Text(value string) *Leaf {
	return &Leaf{Value: &value}
}

// Tagged returns a leaf rendered as <tag attrs>value</tag>.
func Tagged(tag, value string, attrs ...Attribute) *Leaf {
	return &Leaf{Tag: tag, Value: &value, Attrs: Attributes(attrs)}
}

// Image returns a self-closing img leaf with src and alt attributes, in that order.
func Image(src, alt string) *Leaf {
	empty := ""
	return &Leaf{
		Tag:         "img",
		Value:       &empty,
		Attrs:       Attrs("src", src, "alt", alt),
		SelfClosing: true,
	}
}

// NewElement returns an element wrapping children in order.
func NewElement(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: children}
}

// Append adds children to the element and returns it.
func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, children...)
	return e
}
