// Package handlers implements the gateway's HTTP handlers: the
// OpenAI-compatible chat completions endpoint and health checks.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/services/completion"
	"github.com/upb/llm-dispatch/utils"
)

// ChatCompletionRequest represents an OpenAI-compatible chat completion request
type ChatCompletionRequest struct {
	Model               string        `json:"model" validate:"required"`
	Messages            []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Temperature         *float64      `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens           *int          `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	MaxCompletionTokens *int          `json:"max_completion_tokens,omitempty" validate:"omitempty,gt=0"`
	TopP                *float64      `json:"top_p,omitempty" validate:"omitempty,gte=0,lte=1"`
	N                   *int          `json:"n,omitempty" validate:"omitempty,gt=0"`
	Stop                []string      `json:"stop,omitempty"`
	PresencePenalty     *float64      `json:"presence_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	FrequencyPenalty    *float64      `json:"frequency_penalty,omitempty" validate:"omitempty,gte=-2,lte=2"`
	Seed                *int          `json:"seed,omitempty"`
	User                string        `json:"user,omitempty"`
}

// ChatMessage represents a single chat message
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant tool"`
	Content string `json:"content" validate:"required"`
}

// ChatCompletionResponse represents an OpenAI-compatible chat completion response
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// ChatChoice represents a completion choice
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatUsage represents token usage information
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionService defines the interface for completion dispatch
type CompletionService interface {
	Complete(ctx context.Context, req *completion.Request) (*completion.Response, error)
}

// ChatHandler handles chat completion HTTP requests
type ChatHandler struct {
	service CompletionService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service CompletionService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// HandleChatCompletion handles POST /v1/chat/completions
func (h *ChatHandler) HandleChatCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.New().String()

	var chatReq ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&chatReq); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return
	}

	messages := make([]providers.Message, len(chatReq.Messages))
	for i, msg := range chatReq.Messages {
		messages[i] = providers.Message{Role: msg.Role, Content: msg.Content}
	}

	serviceReq := &completion.Request{
		Model:    chatReq.Model,
		Messages: messages,
		Params:   buildParams(&chatReq),
	}

	h.logger.Debug("processing chat completion",
		zap.String("request_id", requestID),
		zap.String("model", chatReq.Model))

	result, err := h.service.Complete(ctx, serviceReq)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	choices := make([]ChatChoice, len(result.Choices))
	for i, c := range result.Choices {
		choices[i] = ChatChoice{
			Index:        c.Index,
			Message:      ChatMessage{Role: c.Message.Role, Content: c.Message.Content},
			FinishReason: c.FinishReason,
		}
	}

	response := ChatCompletionResponse{
		ID:      result.ID,
		Object:  "chat.completion",
		Created: result.Created,
		Model:   result.Model,
		Choices: choices,
		Usage: ChatUsage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}
	if response.ID == "" {
		response.ID = "chatcmpl-" + requestID
	}
	if response.Created == 0 {
		response.Created = time.Now().Unix()
	}

	h.logger.Info("chat completion successful",
		zap.String("request_id", requestID),
		zap.String("provider", result.Provider),
		zap.String("model", result.Model),
		zap.Int("total_tokens", response.Usage.TotalTokens),
		zap.Int("latency_ms", result.LatencyMs))

	if err := utils.WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// buildParams collects the canonical parameters the caller set.
func buildParams(req *ChatCompletionRequest) map[string]any {
	params := make(map[string]any)
	if req.Temperature != nil {
		params["temperature"] = *req.Temperature
	}
	if req.MaxTokens != nil {
		params["max_tokens"] = *req.MaxTokens
	}
	if req.MaxCompletionTokens != nil {
		params["max_completion_tokens"] = *req.MaxCompletionTokens
	}
	if req.TopP != nil {
		params["top_p"] = *req.TopP
	}
	if req.N != nil {
		params["n"] = *req.N
	}
	if len(req.Stop) > 0 {
		params["stop"] = req.Stop
	}
	if req.PresencePenalty != nil {
		params["presence_penalty"] = *req.PresencePenalty
	}
	if req.FrequencyPenalty != nil {
		params["frequency_penalty"] = *req.FrequencyPenalty
	}
	if req.Seed != nil {
		params["seed"] = *req.Seed
	}
	if req.User != "" {
		params["user"] = req.User
	}
	return params
}
