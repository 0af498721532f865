package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/ollama"
)

// ollamaClientAdapter adapts the Ollama client to the LLM Client interface
type ollamaClientAdapter struct {
	client  *ollama.Client
	config  *config.Config
	limiter *rate.Limiter
}

// newOllamaClientAdapter creates a new Ollama client adapter
func newOllamaClientAdapter(client *ollama.Client, cfg *config.Config, limiter *rate.Limiter) *ollamaClientAdapter {
	return &ollamaClientAdapter{
		client:  client,
		config:  cfg,
		limiter: limiter,
	}
}

// GenerateCompletion implements the Client interface for Ollama
func (a *ollamaClientAdapter) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("ollama rate limit wait: %w", err)
		}
	}

	model := req.Model
	if model == "" {
		model = a.config.Ollama.Model
	}

	ollamaReq := ollama.GenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		System: req.System,
	}

	if req.Temperature > 0 || req.MaxTokens > 0 {
		ollamaReq.Options = &ollama.RequestOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		}
	}

	resp, err := a.client.GenerateCompletion(ctx, ollamaReq)
	if err != nil {
		return nil, fmt.Errorf("ollama completion failed: %w", err)
	}

	return &GenerateResponse{
		Content: resp.Response,
		Model:   resp.Model,
	}, nil
}
