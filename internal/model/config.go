package model

import "time"

// Config holds the full pipeline configuration. Credentials are passed
// explicitly through this struct rather than read from process globals, so
// adapters stay independently testable with fake transports.
type Config struct {
	HTTP        HTTPConfig      `yaml:"http"`
	Sources     SourcesConfig   `yaml:"sources"`
	LLM         LLMConfig       `yaml:"llm"`
	Pipeline    PipelineConfig  `yaml:"pipeline"`
	Cache       CacheConfig     `yaml:"cache"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Server      ServerConfig    `yaml:"server"`
	Concurrency Concurrency     `yaml:"concurrency"`
}

// HTTPConfig configures outbound HTTP behavior shared by probes and the
// news client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// SourcesConfig carries one credential block per evidence source.
type SourcesConfig struct {
	FactCheck FactCheckSource `yaml:"fact_check"`
	Search    SearchSource    `yaml:"search"`
	News      NewsSource      `yaml:"news"`
}

// FactCheckSource configures the claims-database adapter.
type FactCheckSource struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint,omitempty"` // Override for tests
}

// SearchSource configures the web-search adapter.
type SearchSource struct {
	APIKey   string `yaml:"api_key"`
	EngineID string `yaml:"engine_id"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// NewsSource configures the news-aggregation adapter.
type NewsSource struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// LLMConfig configures the synthesis provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// PipelineConfig bounds the verification pipeline.
type PipelineConfig struct {
	PhaseTimeout      time.Duration `yaml:"phase_timeout"`      // Per evidence source
	RequestBudget     time.Duration `yaml:"request_budget"`     // Hard wall-clock budget per request
	ValidateCitations bool          `yaml:"validate_citations"` // Reachability probes on/off
	ValidationTimeout time.Duration `yaml:"validation_timeout"` // Per-URL probe bound
}

// CacheConfig configures the best-effort report cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Backend  string        `yaml:"backend"` // memory, redis
	TTL      time.Duration `yaml:"ttl"`
	RedisURL string        `yaml:"redis_url,omitempty"`
}

// RateLimitConfig configures the per-caller request limiter.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	DatabasePath   string   `yaml:"database_path"`
	LogMode        string   `yaml:"log_mode"` // dev, prod
}

// Concurrency bounds background parallelism.
type Concurrency struct {
	ValidationWorkers int `yaml:"validation_workers"`
	BatchWorkers      int `yaml:"batch_workers"`
}

// DefaultConfig returns the built-in defaults every other layer overrides.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		Pipeline: PipelineConfig{
			PhaseTimeout:      10 * time.Second,
			RequestBudget:     45 * time.Second,
			ValidateCitations: true,
			ValidationTimeout: 2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             5,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			DatabasePath:   "claimlens.db",
			LogMode:        "dev",
		},
		Concurrency: Concurrency{
			ValidationWorkers: 10,
			BatchWorkers:      4,
		},
	}
}
