package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"

	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
)

// InitOptions are the answers of the init form
type InitOptions struct {
	QuestionID   string
	Title        string
	Description  string
	FunctionName string
	// Parameters is a comma separated list of name: type pairs
	Parameters string
	ReturnType string
	Language   string
	// Output is the request file to create (.yaml, .yml or .json)
	Output string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem FileSystem
	validator  *schema.Validator
	vocab      dsl.Vocabulary
	out        func(format string, a ...any)
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(validator *schema.Validator, vocab dsl.Vocabulary) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		validator:  validator,
		vocab:      vocab,
		out:        func(format string, a ...any) { fmt.Printf(format, a...) },
	}
}

func (c *Controller) Init(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := c.newPipeline(cfg, false)

	cmd := NewInitCommand(p.validator, dsl.Vocabulary{MaxNestingDepth: cfg.Generator.MaxNestingDepth})
	cmd.out = func(format string, a ...any) { fmt.Fprintf(c.out(), format, a...) }
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return errors.Wrap(err, "failed to get init options")
		}
	}

	req, err := options.request()
	if err != nil {
		return err
	}
	if err := ic.validator.Validate(req); err != nil {
		return errors.Wrap(err, "request is invalid")
	}

	data, err := schema.EncodeRequest(req, filepath.Ext(options.Output))
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", options.Output)
	}
	if err := ic.filesystem.WriteFile(options.Output, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", options.Output)
	}

	ic.out("✅ Created request %s\n", options.Output)
	ic.out("   Run: codestub generate --input %s\n", options.Output)
	return nil
}

// request builds the template request described by the answers
func (o *InitOptions) request() (schema.TemplateRequest, error) {
	params, err := parseParameters(o.Parameters)
	if err != nil {
		return schema.TemplateRequest{}, err
	}

	description := o.Description
	if strings.TrimSpace(description) == "" {
		description = o.Title
	}

	return schema.TemplateRequest{
		QuestionID:  o.QuestionID,
		Title:       o.Title,
		Description: description,
		Language:    o.Language,
		Signature: schema.FunctionSignature{
			FunctionName: o.FunctionName,
			Parameters:   params,
			Returns:      schema.ReturnSpec{Type: o.ReturnType},
		},
	}, nil
}

// parseParameters reads "nums: int[], target: int"
func parseParameters(s string) ([]schema.Parameter, error) {
	params := []schema.Parameter{}
	if strings.TrimSpace(s) == "" {
		return params, nil
	}

	for _, part := range strings.Split(s, ",") {
		name, typ, ok := strings.Cut(part, ":")
		name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
		if !ok || name == "" || typ == "" {
			return nil, errors.Newf("invalid parameter %q, expected name: type", strings.TrimSpace(part))
		}
		params = append(params, schema.Parameter{Name: name, Type: typ})
	}
	return params, nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{Output: "request.yaml"}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	typeOptions := huh.NewOptions(ic.vocab.Tokens()...)
	languageOptions := huh.NewOptions(ic.validator.Languages()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Question ID").
				Description("Letters, digits, hyphens and underscores").
				Value(&options.QuestionID).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("question id cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Title").
				Value(&options.Title),

			huh.NewText().
				Title("Description").
				Value(&options.Description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Function name").
				Value(&options.FunctionName),

			huh.NewInput().
				Title("Parameters").
				Description("e.g. nums: int[], target: int").
				Value(&options.Parameters).
				Validate(func(s string) error {
					params, err := parseParameters(s)
					if err != nil {
						return err
					}
					for _, p := range params {
						if !ic.vocab.Accepts(p.Type) {
							return errors.Newf("unsupported type %s", p.Type)
						}
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Return type").
				Options(typeOptions...).
				Value(&options.ReturnType),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(languageOptions...).
				Value(&options.Language),

			huh.NewInput().
				Title("Request file").
				Description("Where to write the request (.yaml or .json)").
				Value(&options.Output).
				Validate(func(s string) error {
					if !schema.IsRequestFile(s) {
						return errors.New("use a .yaml, .yml or .json file")
					}
					if _, err := ic.filesystem.Stat(s); err == nil {
						return errors.Newf("file %s already exists", s)
					}
					return nil
				}),
		),
	)
}
