package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "mdsite.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "mdsite.yaml" {
			t.Errorf("expected context file=mdsite.yaml, got %v", file)
		}
		if err.Error() != "[config:fatal] invalid configuration" {
			t.Errorf("unexpected Error(): %s", err.Error())
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		inner := ConfigError("test error").Build()
		err := fmt.Errorf("load: %w", inner)

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if GetSeverity(err) != SeverityFatal {
			t.Error("expected error to have fatal severity")
		}
		if inner.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !inner.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := errors.New("plain")
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(err))
		}
		if GetSeverity(err) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(err))
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := BuildError("failed").WithContext("a", 1).Build()
		derived := base.WithContext("b", 2)

		if _, ok := base.Context().Get("b"); ok {
			t.Error("expected base context to be unchanged")
		}
		if v, ok := derived.Context().Get("a"); !ok || v != 1 {
			t.Errorf("expected derived to keep a=1, got %v", v)
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := MarkdownError("compile page").Build()
		b := MarkdownError("compile page").WithContext("file", "x.md").Build()
		c := TemplateError("compile page").Build()
		if !errors.Is(a, b) {
			t.Error("expected same category and message to match")
		}
		if errors.Is(a, c) {
			t.Error("expected different categories not to match")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryFileSystem, "write page").
			WithSeverity(SeverityWarning).
			Retryable().
			WithContext("path", "public/index.html").
			WithContext("attempt", 2).
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected category %s, got %s", CategoryFileSystem, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if err.RetryStrategy() != RetryBackoff {
			t.Errorf("expected retry strategy %s, got %s", RetryBackoff, err.RetryStrategy())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if err.Cause() != originalErr {
			t.Error("expected Cause to return the original error")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryNever},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryNever},
			{"MarkdownError", MarkdownError("test"), CategoryMarkdown, SeverityError, RetryUserAction},
			{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityError, RetryUserAction},
			{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryBackoff},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		var ctx ErrorContext
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}
		if _, ok := ctx.GetString("key2"); ok {
			t.Error("expected non-string value to be rejected by GetString")
		}
		if _, ok := ctx.Get("nonexistent"); ok {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{"key1": "value1", "shared": "original"}
		ctx2 := ErrorContext{"key2": "value2", "shared": "overridden"}

		merged := ctx1.Merge(ctx2)

		if v, _ := merged.GetString("key1"); v != "value1" {
			t.Errorf("expected key1=value1, got %s", v)
		}
		if v, _ := merged.GetString("key2"); v != "value2" {
			t.Errorf("expected key2=value2, got %s", v)
		}
		if v, _ := merged.GetString("shared"); v != "overridden" {
			t.Errorf("expected shared=overridden, got %s", v)
		}
		if v, _ := ctx1.GetString("shared"); v != "original" {
			t.Errorf("expected ctx1 to be unchanged, got %s", v)
		}
	})
}

func TestCategoryHelpers_WithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := FileSystemError("public/a.html: write page").WithCause(cause).Build()

	if !errors.Is(err, cause) {
		t.Error("expected helper-built error to wrap its cause")
	}
	if err.Category() != CategoryFileSystem || !err.CanRetry() {
		t.Errorf("unexpected classification: %s retry=%v", err.Category(), err.CanRetry())
	}
	if got := err.Error(); got != "[filesystem:error] public/a.html: write page: disk full" {
		t.Errorf("unexpected message %q", got)
	}
}
