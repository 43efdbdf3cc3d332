package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/codestub/codestub/internal/dsl"
)

// Types prints the DSL type mapping of one language in catalog order
func (c *Controller) Types(ctx context.Context, language string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := c.newPipeline(cfg, false)

	mapping, err := p.service.TypeMapping(language)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DSL TYPE\t"+language+"\tCATEGORY")
	for _, token := range dsl.DefaultVocabulary.Tokens() {
		syntax, ok := mapping[token]
		if !ok {
			continue
		}
		kind, _ := dsl.Category(token)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", token, syntax, kind)
	}
	return tw.Flush()
}

// Languages prints every supported language with its file extension
func (c *Controller) Languages(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	p := c.newPipeline(cfg, false)

	tw := tabwriter.NewWriter(c.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tEXTENSION")
	for _, lang := range p.service.Languages() {
		backend, err := p.service.Backend(lang)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", lang, backend.FileExtension())
	}
	return tw.Flush()
}
