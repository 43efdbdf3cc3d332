// Package commands contains the CLI commands for the application
package commands

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/codestub/codestub/internal/codegen"
	"github.com/codestub/codestub/internal/config"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
)

type Flags struct {
	// LogLevel is set only when given on the command line or in LOG_LEVEL;
	// empty defers to the configured level
	LogLevel string
	// Config is an explicit codestub.json; empty searches the working
	// directory and its parents
	Config string
}

type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	// Stdout receives command output; nil means os.Stdout
	Stdout io.Writer
}

func (c *Controller) out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// loadConfig resolves the configuration for a command and validates it
func (c *Controller) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if c.Flags != nil && c.Flags.Config != "" {
		cfg, err = config.LoadFromPath(c.Flags.Config)
		if err == nil {
			err = cfg.ApplyEnv(os.LookupEnv)
		}
	} else {
		var dir string
		cfg, dir, err = config.Load()
		if dir != "" {
			c.Logger.Debug().Str("dir", dir).Msg("loaded " + config.FileName)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// an explicit --log-level wins over the configured level
	level := cfg.LogLevel
	if c.Flags != nil && c.Flags.LogLevel != "" {
		level = c.Flags.LogLevel
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		c.Logger = c.Logger.Level(lvl)
	}
	return cfg, nil
}

// pipeline validates requests and renders them with the configured backends
type pipeline struct {
	service   *codegen.Service
	validator *schema.Validator
}

func (c *Controller) newPipeline(cfg *config.Config, omitHarness bool) *pipeline {
	vocab := dsl.Vocabulary{MaxNestingDepth: cfg.Generator.MaxNestingDepth}
	svc := codegen.NewService(codegen.DefaultRegistry, codegen.Options{
		SolutionName: cfg.Generator.SolutionName,
		OmitHarness:  omitHarness,
		Vocabulary:   vocab,
	}, c.Logger)

	return &pipeline{
		service:   svc,
		validator: schema.NewValidator(svc.Languages(), vocab),
	}
}

// render validates req and returns its template and file extension
func (p *pipeline) render(req schema.TemplateRequest) (string, string, error) {
	if err := p.validator.Validate(req); err != nil {
		return "", "", err
	}

	backend, err := p.service.Backend(req.Language)
	if err != nil {
		return "", "", err
	}

	code, err := p.service.Generate(req.Signature, req.Language, req.QuestionID)
	if err != nil {
		return "", "", err
	}
	return code, backend.FileExtension(), nil
}
