package port

import (
	"context"
	"encoding/json"
)

// ContentBlock is one typed segment of a message or reply.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is a single conversational turn sent to the backend.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// GenerationRequest is the provider-neutral request sent to a text-generation backend.
type GenerationRequest struct {
	System      string
	Messages    []Message
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// GenerationResponse is the decoded top-level reply of a backend, normalised
// to the content-list shape of the Anthropic Messages API.
type GenerationResponse struct {
	Content    []ContentBlock  `json:"content"`
	StopReason string          `json:"stop_reason,omitempty"`
	Model      string          `json:"model,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// GenerationClient abstracts a text-generation backend.
type GenerationClient interface {
	Invoke(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)
}
