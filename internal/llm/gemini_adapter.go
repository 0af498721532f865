package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/gemini"
)

// geminiClientAdapter adapts the Gemini client to the LLM Client interface
type geminiClientAdapter struct {
	client  *gemini.Client
	config  *config.Config
	limiter *rate.Limiter
}

// newGeminiClientAdapter creates a new Gemini client adapter
func newGeminiClientAdapter(client *gemini.Client, cfg *config.Config, limiter *rate.Limiter) *geminiClientAdapter {
	return &geminiClientAdapter{
		client:  client,
		config:  cfg,
		limiter: limiter,
	}
}

// GenerateCompletion implements the Client interface for Gemini
func (a *geminiClientAdapter) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("gemini rate limit wait: %w", err)
		}
	}

	contents := []gemini.Content{
		{
			Role:  "user",
			Parts: []gemini.Part{{Text: req.Prompt}},
		},
	}

	// Gemini has no system role; prepend the instruction as a marked
	// user message the way the API docs suggest
	if req.System != "" {
		contents = append([]gemini.Content{
			{
				Role:  "user",
				Parts: []gemini.Part{{Text: fmt.Sprintf("[System instruction] %s", req.System)}},
			},
		}, contents...)
	}

	geminiReq := gemini.ChatRequest{
		Model:    req.Model,
		Contents: contents,
		GenerationConfig: &gemini.GenerationConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     getTemperature(req.Temperature),
		},
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}

	return &GenerateResponse{
		Content: resp.Text(),
		Model:   req.Model,
		Blocked: resp.Blocked(),
	}, nil
}

// getTemperature returns a pointer to the temperature value
func getTemperature(temp float64) *float64 {
	if temp <= 0 {
		return nil
	}
	return &temp
}
