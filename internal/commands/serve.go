package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/codestub/codestub/internal/config"
	"github.com/codestub/codestub/internal/serve"
)

// ServeOptions contains options for the serve command
type ServeOptions struct {
	// Port overrides the configured port when positive
	Port int
}

// serveConfig loads the configuration and applies the command line options
func (c *Controller) serveConfig(opts ServeOptions) (*config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}
	return cfg, nil
}

func (c *Controller) Serve(ctx context.Context, opts ...ServeOptions) error {
	var o ServeOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	cfg, err := c.serveConfig(o)
	if err != nil {
		return err
	}

	p := c.newPipeline(cfg, false)
	server, err := serve.NewServer(p.service, p.validator, cfg, c.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, cfg.Port); err != nil {
		return err
	}
	c.Logger.Info().Msg("serve shutdown complete")
	return nil
}
