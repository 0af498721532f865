// Package llm provides a provider-neutral interface over the supported
// text generators and a factory that builds clients from configuration.
package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/gemini"
	"github.com/tildaslashalef/bugfix/internal/loggy"
	"github.com/tildaslashalef/bugfix/internal/ollama"
)

// GenerateRequest represents a request for text generation
type GenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	System      string  `json:"system,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// GenerateResponse represents a response from a text generation request
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	// Blocked is set when the provider withheld the reply (for example
	// safety filtering); Content is empty in that case.
	Blocked bool `json:"blocked,omitempty"`
}

// Client defines the interface for LLM clients
type Client interface {
	// GenerateCompletion sends a non-streaming completion request
	GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// ClientType defines the type of LLM client
type ClientType string

const (
	// Gemini client type
	Gemini ClientType = "gemini"

	// Ollama client type
	Ollama ClientType = "ollama"
)

// Factory creates and returns LLM clients
type Factory struct {
	config *config.Config
	logger *loggy.Logger

	gemini *gemini.Client
	ollama *ollama.Client

	geminiLimiter *rate.Limiter
	ollamaLimiter *rate.Limiter
}

// newLimiter creates a rate limiter from requests-per-minute and burst
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		// Zero or negative RPM means no limiting
		return rate.NewLimiter(rate.Inf, burst)
	}
	b := burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), b)
}

// NewFactory creates a new LLM client factory
func NewFactory(cfg *config.Config, logger *loggy.Logger) *Factory {
	f := &Factory{
		config: cfg,
		logger: logger,
	}

	if cfg.Gemini.APIKey != "" {
		f.gemini = gemini.NewClient(gemini.Config{
			APIKey:           cfg.Gemini.APIKey,
			BaseURL:          cfg.Gemini.BaseURL,
			APIVersion:       cfg.Gemini.APIVersion,
			DefaultModel:     cfg.Gemini.Model,
			Timeout:          cfg.Gemini.Timeout,
			MaxRetries:       cfg.Gemini.MaxRetries,
			DefaultMaxTokens: cfg.Gemini.MaxTokens,
			Temperature:      gemini.Float64Ptr(cfg.Gemini.Temperature),
		})
		f.geminiLimiter = newLimiter(cfg.Gemini.RequestsPerMinute, cfg.Gemini.BurstLimit)
		logger.Info("initialized Gemini client",
			"base_url", cfg.Gemini.BaseURL,
			"model", cfg.Gemini.Model,
			"rpm", cfg.Gemini.RequestsPerMinute)
	}

	if cfg.Ollama.Endpoint != "" {
		f.ollama = ollama.NewClient(ollama.Config{
			Endpoint:   cfg.Ollama.Endpoint,
			Timeout:    cfg.Ollama.Timeout,
			MaxRetries: cfg.Ollama.MaxRetries,
		})
		f.ollamaLimiter = newLimiter(cfg.Ollama.RequestsPerMinute, cfg.Ollama.BurstLimit)
		logger.Info("initialized Ollama client",
			"endpoint", cfg.Ollama.Endpoint,
			"model", cfg.Ollama.Model)
	}

	return f
}

// GetClient returns an LLM client of the specified type
func (f *Factory) GetClient(clientType ClientType) (Client, error) {
	switch clientType {
	case Gemini:
		if f.gemini == nil {
			return nil, fmt.Errorf("Gemini client not initialized - check configuration")
		}
		return newGeminiClientAdapter(f.gemini, f.config, f.geminiLimiter), nil

	case Ollama:
		if f.ollama == nil {
			return nil, fmt.Errorf("Ollama client not initialized - check configuration")
		}
		return newOllamaClientAdapter(f.ollama, f.config, f.ollamaLimiter), nil

	default:
		return nil, fmt.Errorf("unknown client type: %s", clientType)
	}
}

// GetDefaultClient returns the default client based on configuration,
// falling back to the first available provider.
func (f *Factory) GetDefaultClient() (Client, ClientType, error) {
	defaultType := ClientType(f.config.DefaultLLMProvider)

	client, err := f.GetClient(defaultType)
	if err == nil {
		return client, defaultType, nil
	}

	f.logger.Warn("Default LLM provider not available, falling back", "default", defaultType, "error", err)

	if f.gemini != nil {
		return newGeminiClientAdapter(f.gemini, f.config, f.geminiLimiter), Gemini, nil
	}
	if f.ollama != nil {
		return newOllamaClientAdapter(f.ollama, f.config, f.ollamaLimiter), Ollama, nil
	}

	return nil, "", fmt.Errorf("no LLM clients initialized - check configuration")
}
