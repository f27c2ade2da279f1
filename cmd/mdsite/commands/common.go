package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Stdout receives user-facing output.
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"mdsite.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Generate the site from the content directory"`
	Serve  ServeCmd  `cmd:"" help:"Serve the site locally and rebuild on changes"`
	Init   InitCmd   `cmd:"" help:"Create a configuration file, template and sample page"`
	Render RenderCmd `cmd:"" help:"Render a single Markdown file to stdout"`
	Title  TitleCmd  `cmd:"" help:"Print the title of a Markdown file"`
	Check  CheckCmd  `cmd:"" help:"Check links in the generated site or in the Markdown sources"`
}

// AfterApply runs after flag parsing; setup logging once. Commands that load
// the configuration call configureLogging again with its settings.
//
//nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	configureLogging(config.LoggingConfig{
		Level:  config.LogLevelInfo,
		Format: config.NormalizeLogFormat(c.LogFormat),
	}, c.Verbose)
	return nil
}

// loadConfig reads the configuration named by the global flag and applies
// its logging settings.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}
	configureLogging(cfg.Logging, c.Verbose)
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig, verbose bool) {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if lc.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
