package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/metrics"
	"sbcanalyzer/internal/port"
)

// Invoker sends one request per call to a generation backend and hands back
// the first text segment of the reply. It never retries.
type Invoker struct {
	client   port.GenerationClient
	provider string
	opts     Options
	logger   *zap.Logger
}

// NewInvoker creates an Invoker. provider is only used to label logs and metrics.
func NewInvoker(client port.GenerationClient, provider string, opts Options, logger *zap.Logger) (*Invoker, error) {
	if client == nil {
		return nil, errors.New("generation client is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		client:   client,
		provider: provider,
		opts:     opts,
		logger:   logger.With(zap.String("provider", provider), zap.String("model", opts.Model)),
	}, nil
}

// Options returns the parameters stamped onto every request.
func (i *Invoker) Options() Options {
	return i.opts
}

// Invoke stamps the configured options onto req, calls the backend once and
// returns the decoded reply together with content[0].text.
func (i *Invoker) Invoke(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, string, error) {
	req.Model = i.opts.Model
	req.MaxTokens = i.opts.MaxTokens
	req.Temperature = i.opts.Temperature
	req.TopP = i.opts.TopP

	start := time.Now()
	resp, err := i.client.Invoke(ctx, req)
	metrics.GenerationDuration.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationRequests.WithLabelValues(i.provider, "error").Inc()
		i.logger.Error("generation.Invoke: backend call failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
		if errors.Is(err, domain.ErrBackendFailure) {
			return nil, "", fmt.Errorf("invoking %s: %w", i.provider, err)
		}
		return nil, "", fmt.Errorf("invoking %s: %w: %w", i.provider, domain.ErrBackendFailure, err)
	}

	if resp == nil || len(resp.Content) == 0 {
		metrics.GenerationRequests.WithLabelValues(i.provider, "empty").Inc()
		i.logger.Error("generation.Invoke: empty content list")
		return resp, "", fmt.Errorf("invoking %s: %w: empty content list", i.provider, domain.ErrBackendFailure)
	}

	metrics.GenerationRequests.WithLabelValues(i.provider, "ok").Inc()
	i.logger.Info("generation.Invoke: reply received",
		zap.Duration("latency", time.Since(start)),
		zap.Int("reply_len", len(resp.Content[0].Text)),
		zap.String("stop_reason", resp.StopReason),
	)
	return resp, resp.Content[0].Text, nil
}
