package codegen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrGeneration marks failures of a backend after validation passed
var ErrGeneration = errors.New("template generation failed")

// UnsupportedLanguageError is returned when no backend is registered for the
// requested language. It is raised before any type validation.
type UnsupportedLanguageError struct {
	Language  string
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return "Unsupported language: " + e.Language
}

// TypeError describes one parameter or return type the language cannot map
type TypeError struct {
	// Field is the offending path, e.g. "parameters[2].type" or "returns.type"
	Field    string `json:"field"`
	Type     string `json:"type"`
	Language string `json:"language"`
	Message  string `json:"message"`
}

func (e TypeError) Error() string {
	return e.Message
}

// TypeValidationError carries every unsupported type of a signature
type TypeValidationError struct {
	Language string
	Errors   []TypeError
}

func (e *TypeValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the individual error messages in scan order
func (e *TypeValidationError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, te := range e.Errors {
		msgs[i] = te.Message
	}
	return msgs
}

func parameterTypeError(index int, typ, language string) TypeError {
	return TypeError{
		Field:    fmt.Sprintf("parameters[%d].type", index),
		Type:     typ,
		Language: language,
		Message:  fmt.Sprintf("Unsupported parameter type: %s for language: %s", typ, language),
	}
}

func returnTypeError(typ, language string) TypeError {
	return TypeError{
		Field:    "returns.type",
		Type:     typ,
		Language: language,
		Message:  fmt.Sprintf("Unsupported return type: %s for language: %s", typ, language),
	}
}
