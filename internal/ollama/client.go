// Package ollama implements a client for a local Ollama server's
// generate endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tildaslashalef/bugfix/internal/loggy"
)

// Client represents an Ollama API client
type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
}

// Config configures the Ollama client
type Config struct {
	Endpoint   string        // Ollama API endpoint URL
	Timeout    time.Duration // Request timeout
	MaxRetries int           // Maximum retries on failure
}

// NewClient creates a new Ollama client from config
func NewClient(cfg Config) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
	}
}

// GenerateCompletion sends a non-streaming generate request
func (c *Client) GenerateCompletion(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req.Stream = false

	var resp GenerateResponse
	if err := c.makeRequest(ctx, http.MethodPost, "/api/generate", req, &resp); err != nil {
		return nil, fmt.Errorf("generating completion: %w", err)
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", resp.Error)
	}

	return &resp, nil
}

// GetVersion returns the Ollama server version, useful as a health check
func (c *Client) GetVersion(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	if err := c.makeRequest(ctx, http.MethodGet, "/api/version", nil, &resp); err != nil {
		return "", fmt.Errorf("getting version: %w", err)
	}
	return resp.Version, nil
}

// makeRequest makes a request to the Ollama API with retries
func (c *Client) makeRequest(ctx context.Context, method, path string, reqBody interface{}, respBody interface{}) error {
	url := c.endpoint + path

	var reqBytes []byte
	if reqBody != nil {
		var err error
		reqBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
	}

	loggy.Debug("Sending Ollama request", "method", method, "url", url)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(reqBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			loggy.Error("Ollama API error response",
				"status", resp.Status,
				"body", string(bodyBytes))
			err := fmt.Errorf("HTTP error: %s, body: %s", resp.Status, string(bodyBytes))
			if resp.StatusCode >= http.StatusInternalServerError {
				return err // retryable
			}
			return backoff.Permanent(err)
		}

		if respBody != nil {
			if err := json.Unmarshal(bodyBytes, respBody); err != nil {
				return backoff.Permanent(fmt.Errorf("unmarshalling response: %w", err))
			}
		}

		return nil
	}

	return backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)))
}
