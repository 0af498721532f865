// Package analyze orchestrates one code analysis round trip: prompt
// construction, generator invocation and critique parsing.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/critique"
	"github.com/tildaslashalef/bugfix/internal/lang"
	"github.com/tildaslashalef/bugfix/internal/llm"
	"github.com/tildaslashalef/bugfix/internal/loggy"
	"github.com/tildaslashalef/bugfix/internal/ulid"
)

// Snippet is the user-supplied code to analyze
type Snippet struct {
	Path     string // Origin path, empty when read from stdin
	Content  string
	Language string // Optional override; detected when empty
}

// Options contains optional parameters for an analysis
type Options struct {
	Model       string  // Override the configured model
	Temperature float64 // Override the configured temperature
}

// Analysis is the outcome of one analysis request
type Analysis struct {
	ID       string
	Snippet  Snippet
	Language string
	Model    string
	Raw      string // Unmodified generator reply
	Blocked  bool   // Reply withheld by the provider
	Result   *critique.Result
	Elapsed  time.Duration
}

// Service coordinates the generator client and the critique parser.
// The client is injected so the service can be tested with a fake.
type Service struct {
	client     llm.Client
	clientType llm.ClientType
	detector   *lang.Detector
	parser     *critique.Parser
	cfg        *config.Config
	logger     *loggy.Logger
}

// NewService creates a new analysis service
func NewService(client llm.Client, clientType llm.ClientType, cfg *config.Config, logger *loggy.Logger) *Service {
	return &Service{
		client:     client,
		clientType: clientType,
		detector:   lang.NewDetector(logger),
		parser:     critique.NewParser(logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// AnalyzeSnippet sends the snippet to the generator and parses the
// reply. A transport or API failure is returned as an error; a reply
// that merely deviates from the expected structure is not — that case
// is encoded in the Result and its Success flag.
func (s *Service) AnalyzeSnippet(ctx context.Context, snippet Snippet, opts *Options) (*Analysis, error) {
	if strings.TrimSpace(snippet.Content) == "" {
		return nil, fmt.Errorf("snippet is empty")
	}
	if opts == nil {
		opts = &Options{}
	}

	analysis := &Analysis{
		ID:      ulid.AnalysisID(),
		Snippet: snippet,
	}

	analysis.Language = snippet.Language
	if analysis.Language == "" {
		analysis.Language = s.detector.Detect(snippet.Path, snippet.Content)
	}

	prompt, err := BuildPrompt(snippet.Content, analysis.Language)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	analysis.Model = opts.Model
	if analysis.Model == "" {
		analysis.Model = s.defaultModel()
	}

	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = s.defaultTemperature()
	}

	s.logger.Info("analyzing snippet",
		"id", analysis.ID,
		"provider", s.clientType,
		"model", analysis.Model,
		"language", analysis.Language,
		"snippet_length", len(snippet.Content))

	start := time.Now()
	resp, err := s.client.GenerateCompletion(ctx, llm.GenerateRequest{
		Model:       analysis.Model,
		Prompt:      prompt,
		MaxTokens:   s.defaultMaxTokens(),
		Temperature: temperature,
	})
	analysis.Elapsed = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("generating analysis: %w", err)
	}

	analysis.Raw = resp.Content
	analysis.Blocked = resp.Blocked
	if resp.Blocked {
		s.logger.Warn("generator withheld the reply", "id", analysis.ID)
	}

	// An empty or blocked reply flows through the parser like any other
	// input and comes back as a failed, all-unset result
	analysis.Result, _ = s.parser.Parse(analysis.Raw)

	s.logger.Info("analysis complete",
		"id", analysis.ID,
		"elapsed", analysis.Elapsed,
		"parse_success", analysis.Result.Success)

	return analysis, nil
}

func (s *Service) defaultModel() string {
	switch s.clientType {
	case llm.Gemini:
		return s.cfg.Gemini.Model
	case llm.Ollama:
		return s.cfg.Ollama.Model
	default:
		return ""
	}
}

func (s *Service) defaultTemperature() float64 {
	switch s.clientType {
	case llm.Gemini:
		return s.cfg.Gemini.Temperature
	case llm.Ollama:
		return s.cfg.Ollama.Temperature
	default:
		return 0
	}
}

func (s *Service) defaultMaxTokens() int {
	switch s.clientType {
	case llm.Gemini:
		return s.cfg.Gemini.MaxTokens
	case llm.Ollama:
		return s.cfg.Ollama.MaxTokens
	default:
		return 0
	}
}
