package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// FileName is the configuration file searched for in the working directory
// and its parents
const FileName = "codestub.json"

// Environments accepted in Config.Env
var Environments = []string{"development", "production", "test"}

// Config represents the codestub.json configuration file merged with the
// environment
type Config struct {
	Env         string          `json:"env"`
	Port        int             `json:"port"`
	LogLevel    string          `json:"log_level"`
	CORSOrigins []string        `json:"cors_origins"`
	API         APIConfig       `json:"api"`
	Generator   GeneratorConfig `json:"generator"`
	Cache       CacheConfig     `json:"cache"`
	Watch       WatchConfig     `json:"watch"`
}

// APIConfig contains HTTP API configuration
type APIConfig struct {
	Version        string          `json:"version"`
	MaxPayloadSize string          `json:"max_payload_size"`
	RateLimit      RateLimitConfig `json:"rate_limit"`

	// TrustedProxies is the number of reverse proxies in front of the
	// server whose X-Forwarded-For entries identify the client. Zero uses
	// the connection address.
	TrustedProxies int `json:"trusted_proxies"`
}

// RateLimitConfig bounds requests per client and window
type RateLimitConfig struct {
	WindowMS    int64 `json:"window_ms"`
	MaxRequests int   `json:"max_requests"`
}

// GeneratorConfig contains template generation options
type GeneratorConfig struct {
	SolutionName    string `json:"solution_name"`
	MaxNestingDepth int    `json:"max_nesting_depth"`
}

// CacheConfig sizes the generated template cache. Zero disables it.
type CacheConfig struct {
	Size int `json:"size"`
}

// WatchConfig contains file watching configuration
type WatchConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Env:         "development",
		Port:        3000,
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		API: APIConfig{
			Version:        "v1",
			MaxPayloadSize: "10mb",
			RateLimit: RateLimitConfig{
				WindowMS:    int64(15 * time.Minute / time.Millisecond),
				MaxRequests: 100,
			},
		},
		Generator: GeneratorConfig{
			SolutionName: "Solution",
		},
		Cache: CacheConfig{
			Size: 512,
		},
		Watch: WatchConfig{
			Include: []string{"*.json", "*.yaml", "*.yml", "*.graphql", "*.gql"},
			Exclude: []string{".git/", "node_modules/", "build/"},
		},
	}
}

// Load builds the configuration from defaults, then codestub.json in the
// current directory or a parent, then .env and the process environment.
// The returned directory is where the file was found, or "" without one.
func Load() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to get current directory")
	}

	cfg, found, err := loadFromDir(dir)
	if err != nil {
		return nil, "", err
	}

	_ = godotenv.Load()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, "", err
	}
	return cfg, found, nil
}

// LoadFromPath loads a specific configuration file over the defaults
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return cfg, nil
}

// loadFromDir searches for codestub.json in the given directory and its parents
func loadFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			cfg, err := LoadFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return cfg, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return Default(), "", nil
}

// ApplyEnv overrides fields from environment variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("APP_ENV"); ok {
		c.Env = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	if v, ok := get("API_VERSION"); ok {
		c.API.Version = v
	}
	if v, ok := get("MAX_PAYLOAD_SIZE"); ok {
		c.API.MaxPayloadSize = v
	}
	if v, ok := get("SOLUTION_NAME"); ok {
		c.Generator.SolutionName = v
	}

	ints := []struct {
		key string
		set func(int64)
	}{
		{"PORT", func(n int64) { c.Port = int(n) }},
		{"RATE_LIMIT_WINDOW_MS", func(n int64) { c.API.RateLimit.WindowMS = n }},
		{"RATE_LIMIT_MAX_REQUESTS", func(n int64) { c.API.RateLimit.MaxRequests = int(n) }},
		{"TEMPLATE_CACHE_SIZE", func(n int64) { c.Cache.Size = int(n) }},
		{"MAX_NESTING_DEPTH", func(n int64) { c.Generator.MaxNestingDepth = int(n) }},
		{"TRUST_PROXY", func(n int64) { c.API.TrustedProxies = int(n) }},
	}
	for _, entry := range ints {
		v, ok := get(entry.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", entry.key)
		}
		entry.set(n)
	}

	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, "Invalid port number. Must be between 1 and 65535.")
	}
	if len(c.CORSOrigins) == 0 {
		problems = append(problems, "CORS origins must be a non-empty list.")
	}
	if !slices.Contains(Environments, c.Env) {
		problems = append(problems, "APP_ENV must be one of: "+strings.Join(Environments, ", "))
	}
	if c.API.RateLimit.WindowMS < 1000 {
		problems = append(problems, "Rate limit window must be at least 1000ms")
	}
	if c.API.RateLimit.MaxRequests < 1 {
		problems = append(problems, "Rate limit max must be at least 1")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, "Invalid log level: "+c.LogLevel)
	}
	if _, err := c.MaxPayloadBytes(); err != nil {
		problems = append(problems, "Invalid max payload size: "+c.API.MaxPayloadSize)
	}
	if c.Cache.Size < 0 {
		problems = append(problems, "Template cache size must not be negative")
	}
	if c.API.TrustedProxies < 0 {
		problems = append(problems, "Trusted proxy count must not be negative")
	}
	if c.Generator.MaxNestingDepth < 0 {
		problems = append(problems, "Max nesting depth must not be negative")
	}

	if len(problems) > 0 {
		return errors.Newf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// MaxPayloadBytes parses API.MaxPayloadSize, e.g. "10mb" or "512KiB".
// "kb", "mb", "gb" and "tb" count in powers of 1024.
func (c *Config) MaxPayloadBytes() (int64, error) {
	n, err := humanize.ParseBytes(binaryUnits(c.API.MaxPayloadSize))
	if err != nil {
		return 0, errors.Wrapf(err, "parse payload size %q", c.API.MaxPayloadSize)
	}
	return int64(n), nil
}

// binaryUnits rewrites a two-letter decimal suffix to its IEC form
func binaryUnits(size string) string {
	size = strings.ToLower(strings.TrimSpace(size))
	for _, unit := range []string{"kb", "mb", "gb", "tb"} {
		if prefix, ok := strings.CutSuffix(size, unit); ok {
			return prefix + unit[:1] + "ib"
		}
	}
	return size
}

// RateWindow returns the rate limit window as a duration
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.API.RateLimit.WindowMS) * time.Millisecond
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
