package commands

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/codestub/codestub/internal/schema"
)

// ValidateOptions contains options for the validate command
type ValidateOptions struct {
	Input    string
	Language string
}

// ErrInvalidRequest is returned when a request file fails validation
var ErrInvalidRequest = errors.New("request is invalid")

// Validate checks a request file without generating anything and prints
// every problem, or the type mapping when it is valid
func (c *Controller) Validate(ctx context.Context, opts ValidateOptions) error {
	if opts.Input == "" {
		return errors.WithHint(errors.New("no request file"), "pass --input <request file>")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := c.newPipeline(cfg, false)

	req, err := schema.LoadRequest(opts.Input)
	if err != nil {
		return err
	}
	if opts.Language != "" {
		req.Language = opts.Language
	}

	out := c.out()
	if err := p.validator.Validate(req); err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fmt.Fprintf(out, "❌ %s is invalid:\n", opts.Input)
		for _, d := range verr.Details {
			fmt.Fprintf(out, "   - %s: %s\n", d.Field, d.Message)
		}
		return ErrInvalidRequest
	}

	sig := req.Signature
	typeErrors, err := p.service.ValidateTypes(sig.Parameters, sig.Returns, req.Language)
	if err != nil {
		return err
	}
	if len(typeErrors) > 0 {
		fmt.Fprintf(out, "❌ %s cannot be generated for %s:\n", opts.Input, req.Language)
		for _, te := range typeErrors {
			fmt.Fprintf(out, "   - %s: %s\n", te.Field, te.Message)
		}
		return ErrInvalidRequest
	}

	fmt.Fprintf(out, "✅ %s can be generated for %s\n", opts.Input, req.Language)
	for _, param := range sig.Parameters {
		mapped, _ := p.service.MapType(param.Type, req.Language)
		fmt.Fprintf(out, "   %s: %s -> %s\n", param.Name, param.Type, mapped)
	}
	mapped, _ := p.service.MapType(sig.Returns.Type, req.Language)
	fmt.Fprintf(out, "   returns: %s -> %s\n", sig.Returns.Type, mapped)
	return nil
}
