// Package bedrock calls Anthropic models hosted on AWS Bedrock Runtime.
package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"sbcanalyzer/internal/config"
	"sbcanalyzer/internal/generation"
	"sbcanalyzer/internal/port"
)

const anthropicVersion = "bedrock-2023-05-31"

func init() {
	generation.RegisterProvider("bedrock", func(cfg *config.GenerationConfig) (port.GenerationClient, error) {
		return NewClient(context.Background(), cfg)
	})
}

// InvokeModelAPI is the subset of the Bedrock Runtime client used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client implements port.GenerationClient on top of Bedrock InvokeModel.
type Client struct {
	api InvokeModelAPI
}

// NewClient builds a Bedrock Runtime client from the default AWS credential
// chain. A configured endpoint overrides the regional one.
func NewClient(ctx context.Context, cfg *config.GenerationConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var opts []func(*bedrockruntime.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *bedrockruntime.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	return NewClientWithAPI(bedrockruntime.NewFromConfig(awsCfg, opts...)), nil
}

// NewClientWithAPI wraps an existing InvokeModel implementation (for testing).
func NewClientWithAPI(api InvokeModelAPI) *Client {
	return &Client{api: api}
}

// invokeBody is the Anthropic-on-Bedrock request body.
type invokeBody struct {
	AnthropicVersion string         `json:"anthropic_version"`
	MaxTokens        int            `json:"max_tokens"`
	Messages         []port.Message `json:"messages"`
	Temperature      float64        `json:"temperature"`
	TopP             float64        `json:"top_p"`
	System           string         `json:"system"`
}

func (c *Client) Invoke(ctx context.Context, in port.GenerationRequest) (*port.GenerationResponse, error) {
	body, err := json.Marshal(invokeBody{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        in.MaxTokens,
		Messages:         in.Messages,
		Temperature:      in.Temperature,
		TopP:             in.TopP,
		System:           in.System,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(in.Model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		var throttled *types.ThrottlingException
		if errors.As(err, &throttled) {
			return nil, generation.NewRateLimitError("bedrock", err, 0)
		}
		return nil, fmt.Errorf("bedrock invoke model: %w", err)
	}

	var resp port.GenerationResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	resp.Raw = json.RawMessage(out.Body)
	return &resp, nil
}
