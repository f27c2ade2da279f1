// Package errors provides the classified error primitives used across mdsite.
//
// Core packages (htmlnode, inline, blocks, markdown, title) return plain
// sentinel or typed errors. The layers above them wrap those errors in a
// ClassifiedError so the CLI can pick an exit code and the preview server an
// HTTP status.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryMarkdown, "compile page").
//		UserAction().
//		WithContext("file", src).
//		Build()
package errors
