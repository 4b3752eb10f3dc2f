package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/generation"
	"sbcanalyzer/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

func init() {
	generation.RegisterProvider("anthropic", func(cfg *config.GenerationConfig) (port.GenerationClient, error) {
		if cfg.APIKey == "" {
			return nil, errors.New("anthropic provider requires an api key")
		}
		return NewClient(cfg), nil
	})
}

// Client implements port.GenerationClient using the Anthropic Messages API.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates an Anthropic client from config. A configured endpoint
// overrides the public API URL.
func NewClient(cfg *config.GenerationConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewClientWithEndpoint(cfg, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GenerationConfig, endpoint string) *Client {
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

// messagesRequest is the Messages API request body.
type messagesRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	System      string         `json:"system,omitempty"`
	Messages    []port.Message `json:"messages"`
	Temperature float64        `json:"temperature"`
	TopP        float64        `json:"top_p"`
}

func (c *Client) Invoke(ctx context.Context, in port.GenerationRequest) (*port.GenerationResponse, error) {
	bodyBytes, err := json.Marshal(messagesRequest{
		Model:       in.Model,
		MaxTokens:   in.MaxTokens,
		System:      in.System,
		Messages:    in.Messages,
		Temperature: in.Temperature,
		TopP:        in.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := generation.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, generation.NewRateLimitError("anthropic", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// parseResponse decodes a Messages API reply. The shape already matches
// port.GenerationResponse, so only the raw body needs attaching.
func parseResponse(body []byte) (*port.GenerationResponse, error) {
	var out port.GenerationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	out.Raw = json.RawMessage(body)
	return &out, nil
}
