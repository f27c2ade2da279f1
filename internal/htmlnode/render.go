package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueMissing indicates a leaf was rendered without a value.
	ErrValueMissing = errors.New("leaf value missing")

	// ErrTagMissing indicates an element was rendered without a tag.
	ErrTagMissing = errors.New("element tag missing")

	// ErrNoChildren indicates an element was rendered with no children.
	ErrNoChildren = errors.New("element has no children")
)

// RenderError reports a tree invariant violated at serialization time.
type RenderError struct {
	Reason error // one of ErrValueMissing, ErrTagMissing, ErrNoChildren
	Tag    string
}

func (e *RenderError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("render html: %v", e.Reason)
	}
	return fmt.Sprintf("render html <%s>: %v", e.Tag, e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Reason }

// Render serializes the tree depth-first.
func Render(n Node) (string, error) {
	if n == nil {
		return "", &RenderError{Reason: ErrValueMissing}
	}
	var b strings.Builder
	if err := n.render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (l *Leaf) render(b *strings.Builder) error {
	if l.Value == nil {
		return &RenderError{Reason: ErrValueMissing, Tag: l.Tag}
	}
	if l.Tag == "" {
		b.WriteString(*l.Value)
		return nil
	}
	b.WriteByte('<')
	b.WriteString(l.Tag)
	b.WriteString(l.Attrs.String())
	if l.SelfClosing {
		b.WriteString(" />")
		return nil
	}
	b.WriteByte('>')
	b.WriteString(*l.Value)
	b.WriteString("</")
	b.WriteString(l.Tag)
	b.WriteByte('>')
	return nil
}

func (e *Element) render(b *strings.Builder) error {
	if e.Tag == "" {
		return &RenderError{Reason: ErrTagMissing}
	}
	if len(e.Children) == 0 {
		return &RenderError{Reason: ErrNoChildren, Tag: e.Tag}
	}
	b.WriteByte('<')
	b.WriteString(e.Tag)
	b.WriteString(e.Attrs.String())
	b.WriteByte('>')
	for _, child := range e.Children {
		if child == nil {
			return &RenderError{Reason: ErrValueMissing, Tag: e.Tag}
		}
		if err := child.render(b); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
	return nil
}
