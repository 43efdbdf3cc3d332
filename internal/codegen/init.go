package codegen

import (
	"github.com/codestub/codestub/internal/codegen/cpp"
	"github.com/codestub/codestub/internal/codegen/java"
	"github.com/codestub/codestub/internal/codegen/javascript"
	"github.com/codestub/codestub/internal/codegen/python"
)

// DefaultRegistry is the global registry instance with pre-registered backends
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(java.Language, func(opts Options) Backend {
		return java.NewGenerator(opts)
	})

	DefaultRegistry.Register(python.Language, func(opts Options) Backend {
		return python.NewGenerator(opts)
	})

	DefaultRegistry.Register(cpp.Language, func(opts Options) Backend {
		return cpp.NewGenerator(opts)
	})

	DefaultRegistry.Register(javascript.Language, func(opts Options) Backend {
		return javascript.NewGenerator(opts)
	})
}
