package inline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnmatchedDelimiter is the sentinel wrapped by UnmatchedDelimiterError.
var ErrUnmatchedDelimiter = errors.New("unmatched delimiter")

// UnmatchedDelimiterError reports text holding an odd number of delimiters.
type UnmatchedDelimiterError struct {
	Delimiter string
	Text      string
}

func (e *UnmatchedDelimiterError) Error() string {
	return fmt.Sprintf("unmatched delimiter %q in text %q", e.Delimiter, e.Text)
}

func (e *UnmatchedDelimiterError) Unwrap() error { return ErrUnmatchedDelimiter }

// SplitDelimiter splits every Plain span on delim. Fragments at even
// positions stay Plain, fragments at odd positions become kind. Empty
// fragments are kept, so leading, trailing and adjacent delimiters produce
// empty Plain spans.
func SplitDelimiter(spans []Span, delim string, kind Kind) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}
		parts := strings.Split(s.Text, delim)
		if len(parts)%2 == 0 {
			return nil, &UnmatchedDelimiterError{Delimiter: delim, Text: s.Text}
		}
		for i, part := range parts {
			if i%2 == 0 {
				out = append(out, PlainSpan(part))
			} else {
				out = append(out, Span{Text: part, Kind: kind})
			}
		}
	}
	return out, nil
}
