package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	// Test: Defaults are valid on their own
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RateWindow())
	assert.Equal(t, 100, cfg.API.RateLimit.MaxRequests)

	size, err := cfg.MaxPayloadBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(10<<20), size)
}

func TestMaxPayloadBytes(t *testing.T) {
	tests := []struct {
		size string
		want int64
	}{
		{size: "10mb", want: 10 << 20},
		{size: "10MB", want: 10 << 20},
		{size: "100kb", want: 100 << 10},
		{size: "1 gb", want: 1 << 30},
		{size: "512KiB", want: 512 << 10},
		{size: "64B", want: 64},
		{size: "2048", want: 2048},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.API.MaxPayloadSize = tt.size
		got, err := cfg.MaxPayloadBytes()
		require.NoError(t, err, tt.size)
		assert.Equal(t, tt.want, got, tt.size)
	}
}

func TestLoadFromPath(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:    "partial file keeps defaults",
			content: `{"port": 8080, "generator": {"solution_name": "Answer"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Port)
				assert.Equal(t, "Answer", cfg.Generator.SolutionName)
				assert.Equal(t, "v1", cfg.API.Version)
				assert.Equal(t, 512, cfg.Cache.Size)
			},
		},
		{
			name:    "nested rate limit",
			content: `{"api": {"rate_limit": {"window_ms": 60000, "max_requests": 5}}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Minute, cfg.RateWindow())
				assert.Equal(t, 5, cfg.API.RateLimit.MaxRequests)
				assert.Equal(t, "10mb", cfg.API.MaxPayloadSize)
			},
		},
		{
			name:        "invalid json",
			content:     `{"port": }`,
			wantErr:     true,
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := LoadFromPath(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromDir_SearchesParents(t *testing.T) {
	// Test: The config file is found from a nested directory
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(`{"port": 4000}`), 0644))

	cfg, dir, err := loadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, 4000, cfg.Port)
}

func TestLoadFromDir_NoFile(t *testing.T) {
	// Test: Without a file the defaults are used
	cfg, dir, err := loadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, dir)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"APP_ENV":                 "production",
		"PORT":                    "9090",
		"CORS_ORIGINS":            "https://a.example, https://b.example,,",
		"RATE_LIMIT_WINDOW_MS":    "2000",
		"RATE_LIMIT_MAX_REQUESTS": "3",
		"TEMPLATE_CACHE_SIZE":     "0",
		"MAX_NESTING_DEPTH":       "4",
		"TRUST_PROXY":             "1",
		"LOG_LEVEL":               "  ",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Second, cfg.RateWindow())
	assert.Equal(t, 3, cfg.API.RateLimit.MaxRequests)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, 4, cfg.Generator.MaxNestingDepth)
	assert.Equal(t, 1, cfg.API.TrustedProxies)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"PORT": "eighty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestValidate_AccumulatesProblems(t *testing.T) {
	// Test: Every invalid field is reported in one error
	cfg := Default()
	cfg.Port = 70000
	cfg.CORSOrigins = nil
	cfg.Env = "staging"
	cfg.API.RateLimit.WindowMS = 10
	cfg.API.RateLimit.MaxRequests = 0
	cfg.API.MaxPayloadSize = "lots"
	cfg.API.TrustedProxies = -1
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Invalid port number")
	assert.Contains(t, msg, "CORS origins must be a non-empty list")
	assert.Contains(t, msg, "APP_ENV must be one of: development, production, test")
	assert.Contains(t, msg, "Rate limit window must be at least 1000ms")
	assert.Contains(t, msg, "Rate limit max must be at least 1")
	assert.Contains(t, msg, "Invalid max payload size: lots")
	assert.Contains(t, msg, "Trusted proxy count must not be negative")
	assert.Contains(t, msg, "Invalid log level: loud")
}
