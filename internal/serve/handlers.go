package serve

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/codestub/codestub/internal/codegen"
	"github.com/codestub/codestub/internal/dsl"
	"github.com/codestub/codestub/internal/schema"
)

var errMalformedBody = errors.New("malformed request body")

// GenerateResponse is returned by POST /template
type GenerateResponse struct {
	Language string           `json:"language"`
	Template string           `json:"template"`
	Metadata TemplateMetadata `json:"metadata"`
}

// TemplateMetadata describes a generated template
type TemplateMetadata struct {
	QuestionID     string `json:"question_id"`
	Title          string `json:"title"`
	FunctionName   string `json:"function_name"`
	ParameterCount int    `json:"parameter_count"`
	GeneratedAt    string `json:"generated_at"`
}

// ValidateResponse is returned by POST /template/validate
type ValidateResponse struct {
	Valid             bool                `json:"valid"`
	Message           string              `json:"message,omitempty"`
	Errors            []codegen.TypeError `json:"errors,omitempty"`
	SignatureAnalysis *SignatureAnalysis  `json:"signature_analysis,omitempty"`
}

// SignatureAnalysis shows how a signature maps into the requested language
type SignatureAnalysis struct {
	FunctionName    string          `json:"function_name"`
	ParameterCount  int             `json:"parameter_count"`
	ReturnType      string          `json:"return_type"`
	LanguageMapping LanguageMapping `json:"language_mapping"`
}

// LanguageMapping pairs each DSL type with its spelling
type LanguageMapping struct {
	Parameters []ParameterMapping `json:"parameters"`
	ReturnType TypePair           `json:"return_type"`
}

// ParameterMapping is the mapping of one named parameter
type ParameterMapping struct {
	Name string `json:"name"`
	TypePair
}

// TypePair is a DSL type and its mapped spelling
type TypePair struct {
	DSLType    string `json:"dsl_type"`
	MappedType string `json:"mapped_type"`
}

// TypesResponse is returned by GET /types/{language}
type TypesResponse struct {
	Language     string                       `json:"language"`
	TypeMappings map[string]string            `json:"type_mappings"`
	TotalTypes   int                          `json:"total_types"`
	Categories   map[string]map[string]string `json:"categories"`
}

// decodeRequest reads a JSON template request bounded by the payload limit
func (s *server) decodeRequest(w http.ResponseWriter, r *http.Request) (schema.TemplateRequest, error) {
	var req schema.TemplateRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.maxPayload)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, errors.Mark(err, errMalformedBody)
	}

	// the request log line carries what was asked for
	zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("question_id", req.QuestionID).
			Str("language", req.Language).
			Str("function_name", req.Signature.FunctionName)
	})
	return req, nil
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		s.handleError(w, r, err)
		return
	}

	template, cached := s.cache.Get(req.Language, req.Signature)
	if !cached {
		template, err = s.templates.Generate(req.Signature, req.Language, req.QuestionID)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.cache.Add(req.Language, req.Signature, template)
	}
	s.stats.recordTemplate(req.Language)

	writeJSON(w, http.StatusCreated, &GenerateResponse{
		Language: req.Language,
		Template: template,
		Metadata: TemplateMetadata{
			QuestionID:     req.QuestionID,
			Title:          req.Title,
			FunctionName:   req.Signature.FunctionName,
			ParameterCount: len(req.Signature.Parameters),
			GeneratedAt:    time.Now().UTC().Format(time.RFC3339Nano),
		},
	})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		s.handleError(w, r, err)
		return
	}

	sig := req.Signature
	typeErrors, err := s.templates.ValidateTypes(sig.Parameters, sig.Returns, req.Language)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if len(typeErrors) > 0 {
		s.stats.validationFailures.Add(1)
		writeJSON(w, http.StatusBadRequest, &ValidateResponse{Valid: false, Errors: typeErrors})
		return
	}

	mapping := LanguageMapping{Parameters: make([]ParameterMapping, 0, len(sig.Parameters))}
	for _, p := range sig.Parameters {
		mapped, err := s.templates.MapType(p.Type, req.Language)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		mapping.Parameters = append(mapping.Parameters, ParameterMapping{
			Name:     p.Name,
			TypePair: TypePair{DSLType: p.Type, MappedType: mapped},
		})
	}
	mappedReturn, err := s.templates.MapType(sig.Returns.Type, req.Language)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	mapping.ReturnType = TypePair{DSLType: sig.Returns.Type, MappedType: mappedReturn}

	writeJSON(w, http.StatusOK, &ValidateResponse{
		Valid:   true,
		Message: "Template can be generated successfully",
		SignatureAnalysis: &SignatureAnalysis{
			FunctionName:    sig.FunctionName,
			ParameterCount:  len(sig.Parameters),
			ReturnType:      sig.Returns.Type,
			LanguageMapping: mapping,
		},
	})
}

func (s *server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"supported_languages": s.templates.Languages(),
		"type_system": map[string][]string{
			"primitives":  dsl.DefaultVocabulary.TokensOf(dsl.KindPrimitive),
			"collections": {"T[]", "List<T>"},
			"special":     {"Tree<T>", "Graph"},
		},
		"examples": map[string][]string{
			"primitives": {"int", "string", "bool"},
			"arrays":     {"int[]", "string[]"},
			"lists":      {"List<int>", "List<string>", "List<List<int>>"},
			"trees":      {"Tree<int>", "Tree<string>"},
			"graphs":     {"Graph"},
		},
	})
}

func (s *server) handleTypes(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	language := r.PathValue("language")
	mapping, err := s.templates.TypeMapping(language)
	if err != nil {
		var langErr *codegen.UnsupportedLanguageError
		if errors.As(err, &langErr) {
			s.sendError(w, http.StatusNotFound, ErrorResponse{
				Error:              "Language not supported",
				Message:            fmt.Sprintf("Language '%s' is not supported", language),
				SupportedLanguages: s.templates.Languages(),
			})
			return
		}
		s.handleError(w, r, err)
		return
	}

	categories := map[string]map[string]string{
		"primitives":  {},
		"collections": {},
		"special":     {},
	}
	for token, syntax := range mapping {
		kind, ok := dsl.Category(token)
		if !ok {
			continue
		}
		categories[categoryName(kind)][token] = syntax
	}

	writeJSON(w, http.StatusOK, &TypesResponse{
		Language:     language,
		TypeMappings: mapping,
		TotalTypes:   len(mapping),
		Categories:   categories,
	})
}

func categoryName(kind dsl.Kind) string {
	switch kind {
	case dsl.KindPrimitive:
		return "primitives"
	case dsl.KindArray, dsl.KindList:
		return "collections"
	default:
		return "special"
	}
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.notFound(w, r)
		return
	}
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	api := "/api/" + s.cfg.API.Version
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Code Template Generator API",
		"version":     Version,
		"description": "HTTP API for generating code templates for DSA problems",
		"endpoints": map[string]string{
			"health":              "/health",
			"template_generation": api + "/template",
			"supported_languages": api + "/languages",
			"type_mappings":       api + "/types/{language}",
			"validation":          api + "/template/validate",
			"statistics":          api + "/stats",
			"documentation":       api + "/docs",
		},
	})
}

func (s *server) handleDocs(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	languages := s.templates.Languages()

	writeJSON(w, http.StatusOK, map[string]any{
		"api_name": "Code Template Generator API",
		"version":  s.cfg.API.Version,
		"base_url": fmt.Sprintf("%s://%s/api/%s", scheme, r.Host, s.cfg.API.Version),
		"endpoints": []map[string]any{
			{
				"method":       "POST",
				"path":         "/template",
				"description":  "Generate a code template for a DSA problem",
				"content_type": "application/json",
				"example_request": schema.TemplateRequest{
					QuestionID:  "two-sum",
					Title:       "Two Sum",
					Description: "Given an integer array nums and an integer target...",
					Language:    "python",
					Signature: schema.FunctionSignature{
						FunctionName: "twoSum",
						Parameters: []schema.Parameter{
							{Name: "nums", Type: "int[]"},
							{Name: "target", Type: "int"},
						},
						Returns: schema.ReturnSpec{Type: "int[]"},
					},
				},
			},
			{
				"method":       "POST",
				"path":         "/template/validate",
				"description":  "Validate template parameters without generating code",
				"content_type": "application/json",
			},
			{
				"method":      "GET",
				"path":        "/languages",
				"description": "Get list of supported languages and type system information",
			},
			{
				"method":      "GET",
				"path":        "/types/{language}",
				"description": "Get type mappings for a specific language",
				"parameters":  map[string]any{"language": languages},
			},
			{
				"method":      "GET",
				"path":        "/stats",
				"description": "Get API statistics and system information",
			},
		},
		"rate_limits": map[string]any{
			"requests_per_window": s.cfg.API.RateLimit.MaxRequests,
			"window_duration":     s.cfg.RateWindow().String(),
		},
		"supported_languages": languages,
	})
}
