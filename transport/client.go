// Package transport executes request descriptors produced by the dispatch
// core against OpenAI-compatible chat completion endpoints. Serialization,
// connection handling, retries and response decoding live here; everything
// upstream of the descriptor is the providers package's concern.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/providers"
)

const completionsPath = "/chat/completions"

// Config holds transport-level settings.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns sensible transport defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:    60 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
	}
}

// Client sends chat completion requests. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewClient creates a transport client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// ChatCompletion POSTs the descriptor body to {base_url}/chat/completions and
// decodes the OpenAI-style response. Transient failures (network errors and
// 5xx statuses) are retried up to the configured limit.
func (c *Client) ChatCompletion(ctx context.Context, desc *providers.RequestDescriptor) (*ChatResponse, error) {
	reqBody, err := json.Marshal(desc.BodyParams)
	if err != nil {
		return nil, &APIError{Code: "marshal_error", Message: "failed to marshal request body", Cause: err}
	}

	url := strings.TrimSuffix(desc.BaseURL, "/") + completionsPath

	var httpResp *http.Response
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying chat completion",
				zap.Int("attempt", attempt),
				zap.String("url", url))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
		if err != nil {
			return nil, &APIError{Code: "request_error", Message: "failed to create request", Cause: err}
		}
		for name, value := range desc.Headers {
			httpReq.Header.Set(name, value)
		}

		httpResp, lastErr = c.httpClient.Do(httpReq)
		if lastErr == nil && httpResp.StatusCode < 500 {
			break
		}
		// The final attempt's response is kept so its status reaches the caller.
		if httpResp != nil && attempt < c.maxRetries {
			httpResp.Body.Close()
			httpResp = nil
		}
	}

	if lastErr != nil {
		return nil, &APIError{Code: "http_error", Message: "request failed", Retryable: true, Cause: lastErr}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &APIError{Code: "read_error", Message: "failed to read response", StatusCode: httpResp.StatusCode, Cause: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(httpResp.StatusCode, respBody)
	}

	var completion ChatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, &APIError{Code: "unmarshal_error", Message: "failed to decode response", StatusCode: httpResp.StatusCode, Cause: err}
	}
	return &completion, nil
}

// decodeAPIError maps a non-200 response to an APIError.
func decodeAPIError(statusCode int, body []byte) error {
	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return &APIError{
			Code:       "unknown_error",
			Message:    string(body),
			StatusCode: statusCode,
			Retryable:  retryable,
		}
	}
	return &APIError{
		Code:       errResp.Error.Type,
		Message:    errResp.Error.Message,
		StatusCode: statusCode,
		Retryable:  retryable,
	}
}
