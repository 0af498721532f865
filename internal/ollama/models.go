package ollama

import "time"

// GenerateRequest represents a request to the /api/generate endpoint
type GenerateRequest struct {
	Model   string          `json:"model"`             // Model name (required)
	Prompt  string          `json:"prompt"`            // Text prompt
	System  string          `json:"system,omitempty"`  // System message
	Stream  bool            `json:"stream"`            // Whether to stream the response
	Options *RequestOptions `json:"options,omitempty"` // Generation parameters
}

// RequestOptions holds model generation parameters
type RequestOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
}

// GenerateResponse represents a response from the /api/generate endpoint
type GenerateResponse struct {
	Model         string    `json:"model"`
	CreatedAt     time.Time `json:"created_at"`
	Response      string    `json:"response"`
	Done          bool      `json:"done"`
	TotalDuration int64     `json:"total_duration,omitempty"`
	EvalCount     int       `json:"eval_count,omitempty"`
	Error         string    `json:"error,omitempty"`
}
