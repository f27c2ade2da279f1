// Package title extracts the page title from Markdown source.
package title

import (
	"errors"
	"strings"
)

// ErrTitleNotFound is returned when no line starts with a level-one heading.
var ErrTitleNotFound = errors.New("no level-one heading found")

// Extract returns the trimmed text of the first line that starts with "# "
// after leading whitespace is removed. "##" and deeper headings are skipped.
func Extract(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", ErrTitleNotFound
}
