package config

import "time"

const (
	defaultContentDir = "content"
	defaultStaticDir  = "static"
	defaultTemplate   = "template.html"
	defaultOutputDir  = "public"
	defaultBasePath   = "/"
	defaultHost       = "127.0.0.1"
	defaultPort       = 8080
	defaultDebounce   = 300 * time.Millisecond
)

func applyDefaults(cfg *Config) {
	if cfg.ContentDir == "" {
		cfg.ContentDir = defaultContentDir
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = defaultStaticDir
	}
	if cfg.Template == "" {
		cfg.Template = defaultTemplate
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.BasePath == "" {
		cfg.BasePath = defaultBasePath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Preview.Host == "" {
		cfg.Preview.Host = defaultHost
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = defaultPort
	}
	if cfg.Preview.Debounce == "" {
		cfg.Preview.Debounce = defaultDebounce.String()
	}
}
