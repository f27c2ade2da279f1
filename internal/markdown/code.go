package markdown

import (
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
)

const fence = "```"

// compileCode emits <pre><code>text</code></pre>. The content is verbatim: no
// inline tokenization is applied.
func compileCode(block string) htmlnode.Node {
	return htmlnode.NewElement("pre", htmlnode.Tagged("code", CodeText(block)))
}

// CodeText strips the fences of a code block and normalizes its body. One
// newline after the opening fence is dropped, as is a blank final line left
// by the closing fence. Lines are dedented by the smallest indentation found
// on a non-blank line and right-trimmed.
func CodeText(block string) string {
	body := strings.TrimPrefix(block, fence)
	body = strings.TrimSuffix(body, fence)
	body = strings.TrimPrefix(body, "\n")

	lines := strings.Split(body, "\n")
	if n := len(lines); isBlank(lines[n-1]) {
		lines = lines[:n-1]
	}

	indent := minIndent(lines)
	for i, l := range lines {
		if len(l) >= indent {
			l = l[indent:]
		} else {
			l = ""
		}
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.Join(lines, "\n")
}

func minIndent(lines []string) int {
	indent := -1
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		w := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || w < indent {
			indent = w
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
