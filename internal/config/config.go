// Package config loads the mdsite.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mdsite.yaml"

// Config is the complete project configuration.
type Config struct {
	ContentDir string        `yaml:"content_dir"`
	StaticDir  string        `yaml:"static_dir"`
	Template   string        `yaml:"template"`
	OutputDir  string        `yaml:"output_dir"`
	BasePath   string        `yaml:"base_path"`
	Build      BuildConfig   `yaml:"build"`
	Logging    LoggingConfig `yaml:"logging"`
	Preview    PreviewConfig `yaml:"preview"`
}

// BuildConfig controls how content is turned into pages.
type BuildConfig struct {
	// Exclude holds doublestar globs matched against content-relative paths.
	Exclude     []string `yaml:"exclude,omitempty"`
	Incremental bool     `yaml:"incremental"`
	CheckLinks  bool     `yaml:"check_links"`
	Drafts      bool     `yaml:"drafts"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Debounce delays rebuilds after file changes, e.g. "300ms".
	Debounce string `yaml:"debounce"`
	// RebuildInterval forces a full rebuild periodically when set, e.g. "10m".
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// Defaults returns a configuration with every default applied.
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. .env files are loaded first so that
// ${VAR} references in the YAML resolve. A missing file yields the defaults.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("Configuration file not found, using defaults", logfields.Path(path))
	case err != nil:
		return nil, configError(err, "read configuration", path)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, configError(err, "parse configuration", path)
		}
	}

	applyEnvOverrides(cfg)
	if err := normalize(cfg); err != nil {
		return nil, configError(err, "normalize configuration", path)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes a configuration file holding the defaults.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// DebounceDuration returns the parsed debounce delay.
func (p PreviewConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(p.Debounce)
	if err != nil {
		return defaultDebounce
	}
	return d
}

// RebuildEvery returns the periodic rebuild interval, zero when disabled.
func (p PreviewConfig) RebuildEvery() time.Duration {
	if p.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(p.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}

// Addr is the listen address of the preview server.
func (p PreviewConfig) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}
