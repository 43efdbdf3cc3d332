package schema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/codestub/codestub/internal/dsl"
)

// Request limits
const (
	MaxQuestionIDLength    = 100
	MaxTitleLength         = 200
	MaxDescriptionLength   = 5000
	MaxFunctionNameLength  = 100
	MaxParameterNameLength = 50
	MaxParameters          = 20
)

var (
	questionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// FieldError is one structural problem in a request
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError lists every structural problem found in a request
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Details))
	for i, d := range e.Details {
		msgs[i] = d.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator checks requests before they reach the generator. The language set
// is supplied by the caller, normally from the backend registry.
type Validator struct {
	languages []string
	vocab     dsl.Vocabulary
}

// NewValidator creates a validator accepting the given languages and DSL
// vocabulary
func NewValidator(languages []string, vocab dsl.Vocabulary) *Validator {
	return &Validator{
		languages: append([]string(nil), languages...),
		vocab:     vocab,
	}
}

// Languages returns the accepted languages
func (v *Validator) Languages() []string {
	return append([]string(nil), v.languages...)
}

// Validate checks every field of req and returns a *ValidationError holding
// all problems, or nil
func (v *Validator) Validate(req TemplateRequest) error {
	var c collector

	c.text("question_id", req.QuestionID, MaxQuestionIDLength)
	if req.QuestionID != "" && !questionIDPattern.MatchString(req.QuestionID) {
		c.add("question_id", "question_id must contain only alphanumeric characters, hyphens, and underscores", req.QuestionID)
	}
	c.text("title", req.Title, MaxTitleLength)
	c.text("description", req.Description, MaxDescriptionLength)

	v.signature(&c, req.Signature)

	switch {
	case req.Language == "":
		c.add("language", "language is required", nil)
	case !slices.Contains(v.languages, req.Language):
		c.add("language", "language must be one of: "+strings.Join(v.languages, ", "), req.Language)
	}

	return c.err()
}

// ValidateSignature checks only the signature part of a request
func (v *Validator) ValidateSignature(sig FunctionSignature) error {
	var c collector
	v.signature(&c, sig)
	return c.err()
}

func (v *Validator) signature(c *collector, sig FunctionSignature) {
	c.identifier("signature.function_name", "function_name", sig.FunctionName, MaxFunctionNameLength)

	if len(sig.Parameters) > MaxParameters {
		c.add("signature.parameters", fmt.Sprintf("maximum %d parameters allowed", MaxParameters), len(sig.Parameters))
	}

	seen := make(map[string]bool, len(sig.Parameters))
	for i, p := range sig.Parameters {
		prefix := fmt.Sprintf("signature.parameters.%d", i)
		c.identifier(prefix+".name", "parameter name", p.Name, MaxParameterNameLength)
		if p.Name != "" && seen[p.Name] {
			c.add(prefix+".name", "parameter name must be unique", p.Name)
		}
		seen[p.Name] = true

		if !v.vocab.Accepts(p.Type) {
			c.add(prefix+".type", "parameter type must be one of: "+v.typeList(), p.Type)
		}
	}

	if !v.vocab.Accepts(sig.Returns.Type) {
		c.add("signature.returns.type", "return type must be one of: "+v.typeList(), sig.Returns.Type)
	}
}

func (v *Validator) typeList() string {
	return strings.Join(v.vocab.Tokens(), ", ")
}

type collector struct {
	details []FieldError
}

func (c *collector) add(field, message string, value any) {
	c.details = append(c.details, FieldError{Field: field, Message: message, Value: value})
}

func (c *collector) text(field, value string, limit int) {
	switch {
	case strings.TrimSpace(value) == "":
		c.add(field, field+" is required", nil)
	case len(value) > limit:
		c.add(field, fmt.Sprintf("%s must not exceed %d characters", field, limit), nil)
	}
}

func (c *collector) identifier(field, label, value string, limit int) {
	switch {
	case value == "":
		c.add(field, label+" is required", nil)
	case len(value) > limit:
		c.add(field, fmt.Sprintf("%s must not exceed %d characters", label, limit), value)
	case !identifierPattern.MatchString(value):
		c.add(field, label+" must be a valid identifier (start with letter/underscore, followed by letters/numbers/underscores)", value)
	}
}

func (c *collector) err() error {
	if len(c.details) == 0 {
		return nil
	}
	return &ValidationError{Details: c.details}
}
