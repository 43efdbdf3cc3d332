package serve

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

func (s *server) uptime() int64 {
	return int64(time.Since(s.started).Seconds())
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// handleHealth handles basic health check requests
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   timestamp(),
		"uptime":      s.uptime(),
		"environment": s.cfg.Env,
		"version":     Version,
	})
}

func (s *server) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	memory := heapUsage()
	logger := zerolog.Ctx(r.Context())

	if proc, err := process.NewProcess(int32(os.Getpid())); err != nil {
		logger.Warn().Err(err).Msg("failed to inspect process")
	} else if info, err := proc.MemoryInfo(); err != nil {
		logger.Warn().Err(err).Msg("failed to read process memory")
	} else {
		memory["rss"] = humanize.Bytes(info.RSS)
		memory["vms"] = humanize.Bytes(info.VMS)
	}

	host := map[string]any{}
	if vm, err := mem.VirtualMemory(); err != nil {
		logger.Warn().Err(err).Msg("failed to get memory stats")
	} else {
		host["total"] = humanize.Bytes(vm.Total)
		host["available"] = humanize.Bytes(vm.Available)
		host["used_percent"] = vm.UsedPercent
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": timestamp(),
		"system": map[string]any{
			"uptime":      s.uptime(),
			"memory":      memory,
			"host_memory": host,
			"go_version":  runtime.Version(),
			"platform":    runtime.GOOS,
			"arch":        runtime.GOARCH,
			"goroutines":  runtime.NumGoroutine(),
		},
		"config": map[string]any{
			"environment":         s.cfg.Env,
			"supported_languages": s.templates.Languages(),
			"api_version":         s.cfg.API.Version,
		},
		"services": map[string]string{
			"template_generator": "operational",
			"type_mapper":        "operational",
			"validation":         "operational",
		},
	})
}

// readinessChecks reports whether every language has a backend with a
// non-empty type table and the validator is wired
func (s *server) readinessChecks() map[string]bool {
	languages := s.templates.Languages()
	mappings := len(languages) > 0
	for _, lang := range languages {
		if m, err := s.templates.TypeMapping(lang); err != nil || len(m) == 0 {
			mappings = false
		}
	}
	return map[string]bool{
		"template_service":   len(languages) > 0,
		"type_mappings":      mappings,
		"validation_service": s.validator != nil,
	}
}

func (s *server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	checks := s.readinessChecks()
	status, code := "ready", http.StatusOK
	for _, ok := range checks {
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"checks":    checks,
		"timestamp": timestamp(),
	})
}

func (s *server) handleLive(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "alive",
		"timestamp": timestamp(),
	})
}
