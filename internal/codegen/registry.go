package codegen

import (
	"sort"
)

// Factory builds a backend configured with opts
type Factory func(opts Options) Backend

// Registry manages available backends
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a new, empty backend registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a new backend factory to the registry
func (r *Registry) Register(language string, factory Factory) {
	r.factories[language] = factory
}

// Get returns a backend for the specified language
func (r *Registry) Get(language string, opts Options) (Backend, error) {
	factory, exists := r.factories[language]
	if !exists {
		return nil, &UnsupportedLanguageError{Language: language, Supported: r.Languages()}
	}

	return factory(opts.WithDefaults()), nil
}

// Has reports whether a backend is registered for language
func (r *Registry) Has(language string) bool {
	_, ok := r.factories[language]
	return ok
}

// Languages returns the supported languages in sorted order. This is the
// single source of truth for the language set used by request validation.
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.factories))
	for lang := range r.factories {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
