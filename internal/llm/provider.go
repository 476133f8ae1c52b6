// Package llm abstracts the generative-text services the synthesis engine
// can use. Providers are interchangeable behind a single completion
// interface; which one runs is purely a configuration decision.
package llm

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
)

// Provider defines the interface for generative-text backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one prompt and returns the completion text.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call.
type CompletionRequest struct {
	// System is the system instruction framing the task.
	System string

	// Prompt is the user-turn content.
	Prompt string

	// Model overrides the configured model (provider-specific names).
	Model string

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls sampling; synthesis always passes a low value.
	Temperature float32
}

// CompletionResponse contains the completion output.
type CompletionResponse struct {
	// Text is the raw completion.
	Text string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama) and tests
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts the pipeline configuration into provider config.
func ConfigFromModel(cfg model.LLMConfig, http model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  http.HTTPProxy,
		HTTPSProxy: http.HTTPSProxy,
		NoProxy:    http.NoProxy,
	}
}
