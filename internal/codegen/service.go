package codegen

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/codestub/codestub/internal/schema"
)

// Service validates signatures and routes them to the registered backends.
// Backends are built once in NewService and only read afterwards, so a
// Service is safe for concurrent use.
type Service struct {
	backends  map[string]Backend
	languages []string
	logger    zerolog.Logger
}

// NewService builds one backend per language registered in registry
func NewService(registry *Registry, opts Options, logger zerolog.Logger) *Service {
	s := &Service{
		backends: make(map[string]Backend),
		logger:   logger.With().Str("component", "codegen").Logger(),
	}

	for _, lang := range registry.Languages() {
		backend, err := registry.Get(lang, opts)
		if err != nil {
			continue
		}
		s.backends[lang] = backend
		s.languages = append(s.languages, lang)
	}
	return s
}

// Languages returns the supported languages in sorted order
func (s *Service) Languages() []string {
	return append([]string(nil), s.languages...)
}

// Backend returns the backend for language
func (s *Service) Backend(language string) (Backend, error) {
	backend, ok := s.backends[language]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: language, Supported: s.Languages()}
	}
	return backend, nil
}

// Generate produces the template for sig in language. The language is checked
// first, then every parameter and return type; any failure means no output.
// questionID is only recorded in logs.
func (s *Service) Generate(sig schema.FunctionSignature, language, questionID string) (string, error) {
	backend, err := s.Backend(language)
	if err != nil {
		return "", err
	}

	if typeErrors := validate(backend, sig.Parameters, sig.Returns); len(typeErrors) > 0 {
		return "", &TypeValidationError{Language: language, Errors: typeErrors}
	}

	code, err := backend.Generate(sig)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "generate %s template for %s", language, sig.FunctionName), ErrGeneration)
	}

	s.logger.Debug().
		Str("question_id", questionID).
		Str("language", language).
		Str("function_name", sig.FunctionName).
		Int("parameter_count", len(sig.Parameters)).
		Int("bytes", len(code)).
		Msg("template generated")

	return string(code), nil
}

// ValidateTypes reports one TypeError per parameter or return type the
// language does not support. An empty result means generation can proceed.
func (s *Service) ValidateTypes(params []schema.Parameter, returns schema.ReturnSpec, language string) ([]TypeError, error) {
	backend, err := s.Backend(language)
	if err != nil {
		return nil, err
	}
	return validate(backend, params, returns), nil
}

// TypeMapping returns the catalog mapping of language, DSL token to syntax
func (s *Service) TypeMapping(language string) (map[string]string, error) {
	backend, err := s.Backend(language)
	if err != nil {
		return nil, err
	}
	return backend.Table().Entries(), nil
}

// MapType spells a single DSL token in language. Unsupported tokens are
// returned unchanged.
func (s *Service) MapType(token, language string) (string, error) {
	backend, err := s.Backend(language)
	if err != nil {
		return "", err
	}
	return backend.Table().Syntax(token), nil
}

func validate(backend Backend, params []schema.Parameter, returns schema.ReturnSpec) []TypeError {
	table := backend.Table()
	language := backend.Language()

	var typeErrors []TypeError
	for i, p := range params {
		if !table.Supported(p.Type) {
			typeErrors = append(typeErrors, parameterTypeError(i, p.Type, language))
		}
	}
	if !table.Supported(returns.Type) {
		typeErrors = append(typeErrors, returnTypeError(returns.Type, language))
	}
	return typeErrors
}
