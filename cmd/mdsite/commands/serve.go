package commands

import (
	"git.home.luguber.info/inful/mdsite/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Host            string `help:"Interface to listen on (overrides preview.host)"`
	Port            int    `short:"p" help:"Port to listen on (overrides preview.port)"`
	Output          string `short:"o" help:"Output directory (overrides output_dir)"`
	BasePath        string `short:"b" name:"base-path" help:"Base path the site is served below (overrides base_path)"`
	RebuildInterval string `name:"rebuild-interval" help:"Periodic full rebuild interval, e.g. 10m (overrides preview.rebuild_interval)"`
	Drafts          bool   `help:"Include pages marked draft: true"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Preview.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Preview.Port = s.Port
	}
	if s.Output != "" {
		cfg.OutputDir = s.Output
	}
	if s.BasePath != "" {
		cfg.BasePath = s.BasePath
	}
	if s.RebuildInterval != "" {
		cfg.Preview.RebuildInterval = s.RebuildInterval
	}
	cfg.Build.Drafts = cfg.Build.Drafts || s.Drafts
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return preview.Run(ctx, cfg)
}
