package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("invalid input").Build(), expected: 2},
		{name: "not found", err: NewError(CategoryNotFound, "missing").Build(), expected: 3},
		{name: "markdown", err: MarkdownError("unmatched").Build(), expected: 4},
		{name: "template", err: TemplateError("bad template").Build(), expected: 4},
		{name: "links", err: NewError(CategoryLinks, "broken links").Build(), expected: 6},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "build", err: BuildError("build failed").Build(), expected: 11},
		{name: "wrapped filesystem", err: fmt.Errorf("ctx: %w", FileSystemError("io").Build()), expected: 11},
		{name: "runtime", err: RuntimeError("boom").Build(), expected: 12},
		{name: "internal", err: NewError(CategoryInternal, "bug").Build(), expected: 10},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	cause := errors.New(`unmatched delimiter "**"`)
	markdownErr := WrapError(cause, CategoryMarkdown, "compile docs/a.md").Build()

	assert.Empty(t, quiet.FormatError(nil))
	assert.Equal(t, `Error: compile docs/a.md: unmatched delimiter "**"`, quiet.FormatError(markdownErr))
	assert.Equal(t, "Error: bad config", quiet.FormatError(ConfigError("bad config").Build()))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(NewError(CategoryInternal, "bug").Build()))
	assert.Equal(t, "Error: unknown error", quiet.FormatError(&customError{msg: "unknown error"}))
	assert.Equal(t, markdownErr.Error(), verbose.FormatError(markdownErr))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(BuildError("build failed").WithContext("file", "a.md").Build())

	assert.Equal(t, 11, code)
	assert.Equal(t, "Error: build failed\n", stderr.String())
	assert.Contains(t, logs.String(), "category=build")
	assert.Contains(t, logs.String(), "file=a.md")

	code = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, code)
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
