// Package frontmatter separates optional YAML frontmatter from a Markdown page.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the frontmatter keys mdsite understands. Unknown keys are kept in
// Page.Fields.
type Meta struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

// Page is a Markdown document split into frontmatter and body.
type Page struct {
	Meta   Meta
	Fields map[string]any
	// Raw is the frontmatter without delimiters, empty when the page had none.
	Raw  []byte
	Body []byte
	Had  bool
}

// Split separates `---` delimited frontmatter from the body. Documents
// without an opening delimiter on the first line are returned whole as body.
// Both LF and CRLF line endings are accepted.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+delimiter)) && len(content)-len(nl+delimiter) >= start {
			end := len(content) - len(delimiter)
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its frontmatter.
func Parse(content []byte) (*Page, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	page := &Page{Raw: fm, Body: body, Had: had, Fields: map[string]any{}}
	if !had {
		return page, nil
	}
	if page.Fields, err = ParseYAML(fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(page.Fields) > 0 {
		if err := yaml.Unmarshal(fm, &page.Meta); err != nil {
			return nil, fmt.Errorf("decode frontmatter: %w", err)
		}
	}
	return page, nil
}

// Compose builds a document from fields and body. Keys are emitted in sorted
// order. Empty fields produce the body alone.
func Compose(fields map[string]any, body []byte) ([]byte, error) {
	if len(fields) == 0 {
		return body, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fields); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, buf.Len()+len(body)+2*(len(delimiter)+1))
	out = append(out, delimiter+"\n"...)
	out = append(out, buf.Bytes()...)
	out = append(out, delimiter+"\n"...)
	return append(out, body...), nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
