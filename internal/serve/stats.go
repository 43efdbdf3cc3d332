package serve

import (
	"maps"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

type stats struct {
	requests           atomic.Int64
	templates          atomic.Int64
	validationFailures atomic.Int64
	rateLimited        atomic.Int64

	mu         sync.Mutex
	byLanguage map[string]int64
}

func newStats() *stats {
	return &stats{byLanguage: make(map[string]int64)}
}

func (st *stats) recordTemplate(language string) {
	st.templates.Add(1)

	st.mu.Lock()
	st.byLanguage[language]++
	st.mu.Unlock()
}

func (st *stats) languages() map[string]int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return maps.Clone(st.byLanguage)
}

// RequestStats is the traffic section of the stats endpoint
type RequestStats struct {
	Total              int64            `json:"total"`
	TemplatesGenerated int64            `json:"templates_generated"`
	ValidationFailures int64            `json:"validation_failures"`
	RateLimited        int64            `json:"rate_limited"`
	ByLanguage         map[string]int64 `json:"by_language"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	APIVersion          string            `json:"api_version"`
	SupportedLanguages  int               `json:"supported_languages"`
	TotalSupportedTypes int               `json:"total_supported_types"`
	UptimeSeconds       int64             `json:"uptime_seconds"`
	MemoryUsage         map[string]string `json:"memory_usage"`
	GoVersion           string            `json:"go_version"`
	Requests            RequestStats      `json:"requests"`
	Cache               CacheStats        `json:"cache"`
	LastUpdated         string            `json:"last_updated"`
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	languages := s.templates.Languages()
	totalTypes := 0
	if len(languages) > 0 {
		if mapping, err := s.templates.TypeMapping(languages[0]); err == nil {
			totalTypes = len(mapping)
		}
	}

	writeJSON(w, http.StatusOK, &StatsResponse{
		APIVersion:          s.cfg.API.Version,
		SupportedLanguages:  len(languages),
		TotalSupportedTypes: totalTypes,
		UptimeSeconds:       int64(time.Since(s.started).Seconds()),
		MemoryUsage:         heapUsage(),
		GoVersion:           runtime.Version(),
		Requests: RequestStats{
			Total:              s.stats.requests.Load(),
			TemplatesGenerated: s.stats.templates.Load(),
			ValidationFailures: s.stats.validationFailures.Load(),
			RateLimited:        s.stats.rateLimited.Load(),
			ByLanguage:         s.stats.languages(),
		},
		Cache:       s.cache.Stats(),
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	})
}

func heapUsage() map[string]string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]string{
		"heap_alloc": humanize.Bytes(m.HeapAlloc),
		"heap_sys":   humanize.Bytes(m.HeapSys),
		"sys":        humanize.Bytes(m.Sys),
	}
}
