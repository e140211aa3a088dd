// Package openai implements the provider adapter for the OpenAI API. It also
// serves as the permissive fallback for unrecognized provider prefixes, since
// unknown providers are treated as generic OpenAI-compatible backends.
package openai

import "github.com/upb/llm-dispatch/providers"

const (
	displayName    = "OpenAI"
	prefix         = "openai"
	defaultBaseURL = "https://api.openai.com/v1"
	apiKeyEnv      = "OPENAI_API_KEY"
	apiBaseEnv     = "OPENAI_API_BASE"
)

// Adapter implements providers.Adapter for OpenAI. The API accepts
// max_completion_tokens natively, so no renames apply.
type Adapter struct {
	*providers.Base
}

// New creates the OpenAI adapter.
func New() *Adapter {
	return &Adapter{
		Base: providers.NewBase(providers.Profile{
			Name:           displayName,
			Prefix:         prefix,
			DefaultBaseURL: defaultBaseURL,
			APIKeyEnv:      apiKeyEnv,
			APIBaseEnv:     apiBaseEnv,
		}),
	}
}
