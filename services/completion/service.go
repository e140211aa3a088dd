// Package completion orchestrates the dispatch pipeline for one chat
// completion: adapter resolution, request building, transport execution,
// and response normalization.
package completion

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/internal/observability"
	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/transport"
)

// ChatCompleter executes a built request descriptor against the provider.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, desc *providers.RequestDescriptor) (*transport.ChatResponse, error)
}

// Service runs the completion pipeline.
type Service struct {
	dispatcher *providers.Dispatcher
	client     ChatCompleter
	logger     *zap.Logger
	dropParams bool
}

// NewService creates a completion service. dropParams controls the default
// handling of parameters a provider does not support.
func NewService(dispatcher *providers.Dispatcher, client ChatCompleter, logger *zap.Logger, dropParams bool) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		dropParams: dropParams,
	}
}

// Complete dispatches one chat completion request and returns the normalized
// result.
func (s *Service) Complete(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	adapter, _, err := s.dispatcher.Resolve(req.Model)
	if err != nil {
		observability.DispatchTotal.WithLabelValues("unknown", "rejected").Inc()
		return nil, err
	}
	providerName := adapter.Profile().Name

	s.logger.Debug("building provider request",
		zap.String("provider", providerName),
		zap.String("model", req.Model))

	desc, err := s.dispatcher.BuildRequest(&providers.Request{
		Model:           req.Model,
		Messages:        req.Messages,
		Params:          req.Params,
		APIKey:          req.APIKey,
		APIBase:         req.APIBase,
		Headers:         req.Headers,
		DropUnsupported: s.dropParams,
	})
	if err != nil {
		observability.DispatchTotal.WithLabelValues(providerName, "rejected").Inc()
		s.logger.Warn("request build failed",
			zap.String("provider", providerName),
			zap.String("model", req.Model),
			zap.Error(err))
		return nil, err
	}

	resp, err := s.client.ChatCompletion(ctx, desc)
	latency := time.Since(start)
	observability.DispatchDuration.WithLabelValues(providerName).Observe(latency.Seconds())
	if err != nil {
		observability.DispatchTotal.WithLabelValues(providerName, "error").Inc()
		s.logger.Error("provider call failed",
			zap.String("provider", providerName),
			zap.String("model", req.Model),
			zap.Error(err))
		return nil, err
	}

	observability.DispatchTotal.WithLabelValues(providerName, "ok").Inc()
	observability.TokensTotal.WithLabelValues(providerName, "prompt").Add(float64(resp.Usage.PromptTokens))
	observability.TokensTotal.WithLabelValues(providerName, "completion").Add(float64(resp.Usage.CompletionTokens))

	s.logger.Info("completion dispatched",
		zap.String("provider", providerName),
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("latency_ms", latency.Milliseconds()))

	return &Response{
		ID:        resp.ID,
		Provider:  providerName,
		Model:     resp.Model,
		Created:   resp.Created,
		Choices:   resp.Choices,
		Usage:     resp.Usage,
		LatencyMs: int(latency.Milliseconds()),
	}, nil
}
