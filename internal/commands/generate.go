package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/codestub/codestub/internal/schema"
)

// GenerateOptions contains options for the generate command
type GenerateOptions struct {
	// Input is a single request file (.json, .yaml, .yml)
	Input string
	// Schema is a GraphQL problem document
	Schema string
	// Language overrides the request's language. With Schema it may list
	// several languages separated by commas; empty means all.
	Language string
	// Out is the output file for Input; empty writes to stdout
	Out string
	// OutDir receives one file per problem and language for Schema
	OutDir    string
	NoHarness bool
}

func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	switch {
	case opts.Input != "" && opts.Schema != "":
		return errors.New("use either --input or --schema, not both")
	case opts.Input != "":
		return c.generateFromRequest(opts)
	case opts.Schema != "":
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		_, err = c.generateFromSchema(c.newPipeline(cfg, opts.NoHarness), opts)
		return err
	default:
		return errors.WithHint(errors.New("nothing to generate"), "pass --input <request file> or --schema <problems.graphql>")
	}
}

func (c *Controller) generateFromRequest(opts GenerateOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := c.newPipeline(cfg, opts.NoHarness)

	req, err := schema.LoadRequest(opts.Input)
	if err != nil {
		return err
	}
	if opts.Language != "" {
		req.Language = opts.Language
	}

	code, _, err := p.render(req)
	if err != nil {
		return errors.Wrapf(err, "generate %s", opts.Input)
	}

	if opts.Out == "" {
		_, err := fmt.Fprint(c.out(), code)
		return err
	}
	if err := writeOutput(opts.Out, code); err != nil {
		return err
	}
	c.Logger.Info().Str("file", opts.Out).Str("language", req.Language).Msg("template written")
	return nil
}

// generateFromSchema writes one template per problem and language and
// returns the written paths. Every problem is attempted; failures are
// reported together.
func (c *Controller) generateFromSchema(p *pipeline, opts GenerateOptions) ([]string, error) {
	data, err := os.ReadFile(opts.Schema)
	if err != nil {
		return nil, errors.Wrapf(err, "read schema %s", opts.Schema)
	}
	requests, err := schema.ParseProblems(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %s", opts.Schema)
	}

	languages := p.service.Languages()
	if opts.Language != "" {
		languages = splitLanguages(opts.Language)
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	var (
		written  []string
		failures []string
	)
	for _, req := range requests {
		for _, lang := range languages {
			req.Language = lang
			code, ext, err := p.render(req)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s (%s): %v", req.QuestionID, lang, err))
				continue
			}

			path := filepath.Join(outDir, req.QuestionID+ext)
			if err := writeOutput(path, code); err != nil {
				return written, err
			}
			written = append(written, path)
			c.Logger.Info().Str("file", path).Str("question_id", req.QuestionID).Str("language", lang).Msg("template written")
		}
	}

	if len(failures) > 0 {
		return written, errors.Newf("%d of %d templates failed:\n  %s",
			len(failures), len(requests)*len(languages), strings.Join(failures, "\n  "))
	}
	return written, nil
}

func splitLanguages(v string) []string {
	var out []string
	for _, lang := range strings.Split(v, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			out = append(out, lang)
		}
	}
	return out
}

func writeOutput(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
