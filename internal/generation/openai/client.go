package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/generation"
	"sbcanalyzer/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

func init() {
	generation.RegisterProvider("openai", func(cfg *config.GenerationConfig) (port.GenerationClient, error) {
		if cfg.APIKey == "" {
			return nil, errors.New("openai provider requires an api key")
		}
		return NewClient(cfg), nil
	})
}

// Client implements port.GenerationClient using the OpenAI Chat Completions API.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI client from config.
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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
	Temperature         float64       `json:"temperature"`
	TopP                float64       `json:"top_p"`
}

func (c *Client) Invoke(ctx context.Context, in port.GenerationRequest) (*port.GenerationResponse, error) {
	reqBody := chatRequest{
		Model:               in.Model,
		MaxCompletionTokens: in.MaxTokens,
		Temperature:         in.Temperature,
		TopP:                in.TopP,
	}
	if in.System != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "system", Content: in.System})
	}
	for _, m := range in.Messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role, Content: joinText(m.Content)})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := generation.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, generation.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

func joinText(blocks []port.ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "")
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// parseResponse maps choices[i].message.content onto content blocks so the
// first choice becomes content[0].
func parseResponse(body []byte) (*port.GenerationResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.GenerationResponse{Model: resp.Model, Raw: json.RawMessage(body)}
	for _, ch := range resp.Choices {
		out.Content = append(out.Content, port.ContentBlock{Type: "text", Text: ch.Message.Content})
	}
	if len(resp.Choices) > 0 {
		out.StopReason = resp.Choices[0].FinishReason
	}
	return out, nil
}
