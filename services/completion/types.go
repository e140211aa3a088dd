package completion

import (
	"github.com/upb/llm-dispatch/providers"
	"github.com/upb/llm-dispatch/transport"
)

// Request is the service-level completion request.
type Request struct {
	// Model is the "provider/model-name" identifier.
	Model string

	// Messages is the conversation to complete.
	Messages []providers.Message

	// Params maps canonical parameter names to values.
	Params map[string]any

	// APIKey and APIBase override credential resolution for this call.
	APIKey  string
	APIBase string

	// Headers are extra outbound headers preserved on the provider call.
	Headers map[string]string
}

// Response is the normalized completion result.
type Response struct {
	ID        string
	Provider  string
	Model     string
	Created   int64
	Choices   []transport.Choice
	Usage     transport.Usage
	LatencyMs int
}
