// Package config loads wordspace configuration from a YAML file, a .env
// file and WORDSPACE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RateLimit      int           `yaml:"rate_limit"` // requests per minute per IP, 0 disables
	CORSOrigins    []string      `yaml:"cors_origins"`
	StaticDir      string        `yaml:"static_dir"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// EmbedderConfig selects and configures the embedding provider
type EmbedderConfig struct {
	Provider  string        `yaml:"provider"`
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"` // calls per second, 0 disables
	Burst     int           `yaml:"burst"`

	// Read from the variable named by APIKeyEnv, never from the file
	APIKey string `yaml:"-"`
}

// CacheConfig configures the embedding cache
type CacheConfig struct {
	Driver     string        `yaml:"driver"`
	MaxEntries int           `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// PipelineConfig tunes the visualization pipeline
type PipelineConfig struct {
	Concurrency int `yaml:"concurrency"`
	MaxWords    int `yaml:"max_words"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Cache    CacheConfig    `yaml:"cache"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the config at path, then applies defaults and environment
// overrides. An empty path, or a path that does not exist, yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	applyDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads a .env file, searching up the directory tree from the
// working directory. A missing file is not an error.
func LoadEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = "openai"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		switch cfg.Embedder.Provider {
		case "openai":
			cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
		case "gemini":
			cfg.Embedder.APIKeyEnv = "GEMINI_API_KEY"
		}
	}
	if cfg.Embedder.Timeout == 0 {
		cfg.Embedder.Timeout = 30 * time.Second
	}
	if cfg.Embedder.Burst == 0 {
		cfg.Embedder.Burst = 1
	}

	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}

	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 8
	}
	if cfg.Pipeline.MaxWords == 0 {
		cfg.Pipeline.MaxWords = 200
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"WORDSPACE_ADDR":              &cfg.Server.Addr,
		"WORDSPACE_STATIC_DIR":        &cfg.Server.StaticDir,
		"WORDSPACE_EMBEDDER_PROVIDER": &cfg.Embedder.Provider,
		"WORDSPACE_EMBEDDER_BASE_URL": &cfg.Embedder.BaseURL,
		"WORDSPACE_EMBEDDER_MODEL":    &cfg.Embedder.Model,
		"WORDSPACE_CACHE_DRIVER":      &cfg.Cache.Driver,
		"WORDSPACE_LOG_LEVEL":         &cfg.Log.Level,
		"WORDSPACE_LOG_FORMAT":        &cfg.Log.Format,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORDSPACE_RATE_LIMIT":  &cfg.Server.RateLimit,
		"WORDSPACE_CONCURRENCY": &cfg.Pipeline.Concurrency,
		"WORDSPACE_MAX_WORDS":   &cfg.Pipeline.MaxWords,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
	}

	if v := os.Getenv("WORDSPACE_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
			}
		}
	}

	if cfg.Embedder.APIKeyEnv != "" {
		cfg.Embedder.APIKey = os.Getenv(cfg.Embedder.APIKeyEnv)
	}
	return nil
}

// Validate checks option values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Embedder.Provider {
	case "openai", "ollama", "gemini":
	default:
		return fmt.Errorf("unknown embedder provider: %s", c.Embedder.Provider)
	}

	switch c.Cache.Driver {
	case "memory", "none", "sqlite":
	default:
		return fmt.Errorf("unknown cache driver: %s", c.Cache.Driver)
	}

	switch c.Log.Format {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	if c.Embedder.Timeout < 0 {
		return fmt.Errorf("embedder.timeout must not be negative")
	}
	if c.Embedder.RateLimit < 0 {
		return fmt.Errorf("embedder.rate_limit must not be negative")
	}
	if c.Pipeline.Concurrency < 1 {
		return fmt.Errorf("pipeline.concurrency must be positive")
	}
	if c.Pipeline.MaxWords < 0 {
		return fmt.Errorf("pipeline.max_words must not be negative")
	}
	if c.Cache.MaxEntries < 0 || c.Cache.TTL < 0 {
		return fmt.Errorf("cache bounds must not be negative")
	}
	return nil
}
