package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"github.com/codestub/codestub/internal/codegen"
	"github.com/codestub/codestub/internal/config"
	"github.com/codestub/codestub/internal/schema"
)

// Version is reported by the info and health endpoints
const Version = "1.0.0"

// Server exposes template generation over HTTP
type Server interface {
	// Start serves on port until ctx is cancelled, then shuts down gracefully
	Start(ctx context.Context, port int) error
	// Handler returns the fully wrapped HTTP handler
	Handler() http.Handler
}

// TemplateService is the part of codegen.Service the server depends on
type TemplateService interface {
	Languages() []string
	Generate(sig schema.FunctionSignature, language, questionID string) (string, error)
	ValidateTypes(params []schema.Parameter, returns schema.ReturnSpec, language string) ([]codegen.TypeError, error)
	TypeMapping(language string) (map[string]string, error)
	MapType(token, language string) (string, error)
}

// RequestValidator checks the structure of incoming requests
type RequestValidator interface {
	Validate(req schema.TemplateRequest) error
}

type server struct {
	templates  TemplateService
	validator  RequestValidator
	cfg        *config.Config
	logger     zerolog.Logger
	cache      *templateCache
	stats      *stats
	limiter    *ipLimiter
	maxPayload int64
	started    time.Time
	server     *http.Server
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error              string              `json:"error"`
	Message            string              `json:"message,omitempty"`
	Details            []schema.FieldError `json:"details,omitempty"`
	AvailableEndpoints []string            `json:"available_endpoints,omitempty"`
	SupportedLanguages []string            `json:"supported_languages,omitempty"`
	RetryAfter         int                 `json:"retry_after,omitempty"`
}

// NewServer creates a server around the template service. cfg must already
// be validated.
func NewServer(templates TemplateService, validator RequestValidator, cfg *config.Config, logger zerolog.Logger) (Server, error) {
	maxPayload, err := cfg.MaxPayloadBytes()
	if err != nil {
		return nil, err
	}

	cache, err := newTemplateCache(cfg.Cache.Size)
	if err != nil {
		return nil, err
	}

	return &server{
		templates:  templates,
		validator:  validator,
		cfg:        cfg,
		logger:     logger.With().Str("component", "serve").Logger(),
		cache:      cache,
		stats:      newStats(),
		limiter:    newIPLimiter(cfg.RateWindow(), cfg.API.RateLimit.MaxRequests),
		maxPayload: maxPayload,
		started:    time.Now(),
	}, nil
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleHealthDetailed)
	mux.HandleFunc("/health/ready", s.handleReady)
	mux.HandleFunc("/health/live", s.handleLive)

	api := "/api/" + s.cfg.API.Version
	mux.HandleFunc(api+"/template", s.handleGenerate)
	mux.HandleFunc(api+"/template/validate", s.handleValidate)
	mux.HandleFunc(api+"/languages", s.handleLanguages)
	mux.HandleFunc(api+"/types/{language}", s.handleTypes)
	mux.HandleFunc(api+"/stats", s.handleStats)
	mux.HandleFunc(api+"/docs", s.handleDocs)
	return mux
}

// Handler wraps the routes in the middleware chain, outermost first:
// request id, logging, security headers, CORS, compression, rate limiting.
// Responses from 1KiB up are gzipped for clients accepting it.
func (s *server) Handler() http.Handler {
	var h http.Handler = s.routes()
	h = s.rateLimit("/api/", h)
	h = gzhttp.GzipHandler(h)
	h = cors(s.cfg.CORSOrigins, h)
	h = securityHeaders(h)
	h = s.logRequests(h)
	h = s.requestID(h)
	return h
}

// Start starts the HTTP server
func (s *server) Start(ctx context.Context, port int) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", port).Str("env", s.cfg.Env).Msg("server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shut down server")
		}
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return errors.Wrapf(err, "failed to listen on port %d", port)
	}
}

// writeJSON sends body with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// sendError sends an error response
func (s *server) sendError(w http.ResponseWriter, status int, resp ErrorResponse) {
	writeJSON(w, status, &resp)
}

// allowMethod rejects requests whose method is not method
func (s *server) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.sendError(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "Method Not Allowed",
		Message: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
	})
	return false
}

func (s *server) availableEndpoints() []string {
	api := "/api/" + s.cfg.API.Version
	return []string{
		"GET /health",
		"POST " + api + "/template",
		"POST " + api + "/template/validate",
		"GET " + api + "/languages",
		"GET " + api + "/types/:language",
		"GET " + api + "/stats",
		"GET " + api + "/docs",
	}
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	s.sendError(w, http.StatusNotFound, ErrorResponse{
		Error:              "Endpoint not found",
		Message:            fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
		AvailableEndpoints: s.availableEndpoints(),
	})
}

// handleError maps a failure of the request pipeline to its status and body
func (s *server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *schema.ValidationError
		typeErr  *codegen.TypeValidationError
		langErr  *codegen.UnsupportedLanguageError
		tooLarge *http.MaxBytesError
		syntax   *json.SyntaxError
		unmarsh  *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &verr):
		s.stats.validationFailures.Add(1)
		s.sendError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation Error",
			Details: verr.Details,
		})
	case errors.As(err, &typeErr), errors.As(err, &langErr):
		s.stats.validationFailures.Add(1)
		s.sendError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Type Validation Error",
			Message: err.Error(),
		})
	case errors.As(err, &tooLarge):
		s.sendError(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "Payload Too Large",
			Message: "Request payload exceeds maximum allowed size",
		})
	case errors.As(err, &syntax), errors.As(err, &unmarsh), errors.Is(err, errMalformedBody):
		s.sendError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid JSON",
			Message: "Request body must be valid JSON",
		})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg := err.Error()
		if s.cfg.IsProduction() {
			msg = "Something went wrong"
		}
		s.sendError(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: msg,
		})
	}
}
