// Package gemini implements a minimal client for the Google Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tildaslashalef/bugfix/internal/loggy"
)

// Client represents a Google Gemini API client
type Client struct {
	apiKey           string
	baseURL          string
	apiVersion       string
	defaultModel     string
	httpClient       *http.Client
	maxRetries       int
	defaultMaxTokens int
	temperature      *float64
}

// Config configures the Gemini client
type Config struct {
	APIKey           string        // API key for authentication
	BaseURL          string        // Base URL for Gemini API
	APIVersion       string        // API version (v1 or v1beta)
	DefaultModel     string        // Default model to use if not specified in request
	Timeout          time.Duration // HTTP client timeout
	MaxRetries       int           // Maximum retries on retryable errors
	DefaultMaxTokens int           // Default max tokens for generation
	Temperature      *float64      // Default temperature value
}

// NewClient creates a new Gemini client from config
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	defaultModel := cfg.DefaultModel
	if defaultModel == "" {
		defaultModel = "gemini-1.5-flash"
	}

	defaultMaxTokens := cfg.DefaultMaxTokens
	if defaultMaxTokens <= 0 {
		defaultMaxTokens = 8192
	}

	return &Client{
		apiKey:           cfg.APIKey,
		baseURL:          baseURL,
		apiVersion:       apiVersion,
		defaultModel:     defaultModel,
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		maxRetries:       cfg.MaxRetries,
		defaultMaxTokens: defaultMaxTokens,
		temperature:      cfg.Temperature,
	}
}

// GenerateContent sends a content generation request to Gemini
func (c *Client) GenerateContent(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.defaultModel
	}

	if req.GenerationConfig == nil {
		req.GenerationConfig = &GenerationConfig{}
	}
	if req.GenerationConfig.MaxOutputTokens <= 0 {
		req.GenerationConfig.MaxOutputTokens = c.defaultMaxTokens
	}
	if req.GenerationConfig.Temperature == nil && c.temperature != nil {
		req.GenerationConfig.Temperature = c.temperature
	}

	var resp ChatResponse
	path := fmt.Sprintf("models/%s:generateContent", req.Model)
	if err := c.makeRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	return &resp, nil
}

// makeRequest makes a request to the Gemini API with retries
func (c *Client) makeRequest(ctx context.Context, method, path string, requestBody interface{}, responseBody interface{}) error {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiVersion, strings.TrimPrefix(path, "/"))

	var requestBytes []byte
	if requestBody != nil {
		var err error
		requestBytes, err = json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
	}

	loggy.Debug("Sending Gemini request",
		"method", method,
		"url", url,
		"body_length", len(requestBytes))

	var lastErr error
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(requestBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		// API key goes in the query string, not a header
		q := req.URL.Query()
		q.Add("key", c.apiKey)
		req.URL.RawQuery = q.Encode()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("sending request: %w", err)
			return lastErr
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("reading response body: %w", err)
			return lastErr
		}

		loggy.Debug("Gemini API response",
			"status", resp.Status,
			"content_length", len(bodyBytes))

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			loggy.Error("Gemini API error response",
				"status", resp.Status,
				"body", string(bodyBytes))

			var apiErr APIError
			if err := json.Unmarshal(bodyBytes, &apiErr); err == nil && apiErr.ErrorDetail != nil {
				lastErr = &apiErr
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
					return lastErr // retryable
				}
				return backoff.Permanent(lastErr)
			}

			lastErr = fmt.Errorf("HTTP error: %s, body: %s", resp.Status, string(bodyBytes))
			return lastErr
		}

		if responseBody != nil {
			if err := json.Unmarshal(bodyBytes, responseBody); err != nil {
				lastErr = fmt.Errorf("unmarshalling response: %w, body: %s", err, string(bodyBytes))
				return backoff.Permanent(lastErr)
			}
		}

		return nil
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries))); err != nil {
		if lastErr != nil && !errors.Is(err, lastErr) {
			return errors.Join(err, lastErr)
		}
		return err
	}

	return nil
}
