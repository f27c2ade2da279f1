package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// Validate checks the configuration for values the build cannot work with.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return validationError("content_dir must not be empty", "content_dir", c.ContentDir)
	}
	if c.OutputDir == "" {
		return validationError("output_dir must not be empty", "output_dir", c.OutputDir)
	}
	// The output directory is wiped on every full build.
	for _, src := range []struct{ field, dir string }{
		{"content_dir", c.ContentDir},
		{"static_dir", c.StaticDir},
	} {
		if src.dir != "" && samePath(src.dir, c.OutputDir) {
			return validationError(fmt.Sprintf("output_dir must differ from %s", src.field), "output_dir", c.OutputDir)
		}
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return validationError("preview.port must be between 0 and 65535", "preview.port", c.Preview.Port)
	}
	if c.Preview.Debounce != "" {
		if d, err := time.ParseDuration(c.Preview.Debounce); err != nil || d < 0 {
			return validationError("preview.debounce must be a non-negative duration", "preview.debounce", c.Preview.Debounce)
		}
	}
	if c.Preview.RebuildInterval != "" {
		if d, err := time.ParseDuration(c.Preview.RebuildInterval); err != nil || d < time.Second {
			return validationError("preview.rebuild_interval must be a duration of at least 1s", "preview.rebuild_interval", c.Preview.RebuildInterval)
		}
	}
	for _, pattern := range c.Build.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return validationError("build.exclude holds an invalid glob", "pattern", pattern)
		}
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func validationError(msg, key string, value any) error {
	return errors.ValidationError(msg).WithContext(key, value).Build()
}

func configError(err error, msg, path string) error {
	return errors.ConfigError(msg).WithCause(err).
		WithContext("path", path).
		Build()
}
