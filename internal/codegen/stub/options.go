package stub

import "github.com/codestub/codestub/internal/dsl"

// DefaultSolutionName is used when Options.SolutionName is empty
const DefaultSolutionName = "Solution"

// Options configure a backend at construction time
type Options struct {
	// SolutionName is the name of the class/struct holding the stub method
	SolutionName string

	// OmitHarness drops the executable entry point from the output
	OmitHarness bool

	// Vocabulary bounds the DSL types the backend's table accepts
	Vocabulary dsl.Vocabulary
}

// WithDefaults fills unset options
func (o Options) WithDefaults() Options {
	if o.SolutionName == "" {
		o.SolutionName = DefaultSolutionName
	}
	return o
}
