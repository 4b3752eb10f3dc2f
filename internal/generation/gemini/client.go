package gemini

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
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

func init() {
	generation.RegisterProvider("gemini", func(cfg *config.GenerationConfig) (port.GenerationClient, error) {
		if cfg.APIKey == "" {
			return nil, errors.New("gemini provider requires an api key")
		}
		return NewClient(cfg), nil
	})
}

// Client implements port.GenerationClient using Google's Gemini API.
type Client struct {
	apiKey   string
	endpoint string // fixed endpoint; empty means derive from the request model
	client   *http.Client
}

// NewClient creates a Gemini client. Without a configured endpoint the URL is
// derived from the model of each request.
func NewClient(cfg *config.GenerationConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.Endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.GenerationConfig, endpoint string) *Client {
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

func (c *Client) Invoke(ctx context.Context, in port.GenerationRequest) (*port.GenerationResponse, error) {
	reqBody := generateRequest{
		GenerationConfig: generationConfig{
			MaxOutputTokens: in.MaxTokens,
			Temperature:     in.Temperature,
			TopP:            in.TopP,
		},
	}
	if in.System != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: in.System}}}
	}
	for _, m := range in.Messages {
		ct := content{Role: m.Role}
		for _, b := range m.Content {
			ct.Parts = append(ct.Parts, part{Text: b.Text})
		}
		reqBody.Contents = append(reqBody.Contents, ct)
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, in.Model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := generation.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, generation.NewRateLimitError("gemini", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, in.Model)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// parseResponse flattens the parts of the first candidate into content blocks.
func parseResponse(body []byte, model string) (*port.GenerationResponse, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.GenerationResponse{Model: model, Raw: json.RawMessage(body)}
	if len(resp.Candidates) == 0 {
		return out, nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		out.Content = append(out.Content, port.ContentBlock{Type: "text", Text: p.Text})
	}
	out.StopReason = resp.Candidates[0].FinishReason
	return out, nil
}
