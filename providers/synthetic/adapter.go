// Package synthetic implements the provider adapter for the Synthetic
// backend, an OpenAI-compatible API at api.synthetic.new.
package synthetic

import "github.com/upb/llm-dispatch/providers"

const (
	displayName    = "Synthetic"
	prefix         = "synthetic"
	defaultBaseURL = "https://api.synthetic.new/v1"
	apiKeyEnv      = "SYNTHETIC_API_KEY"
	apiBaseEnv     = "SYNTHETIC_API_BASE"
)

// Adapter implements providers.Adapter for the Synthetic backend. It inherits
// the OpenAI-compatible defaults and renames max_completion_tokens to
// max_tokens, which is the only name Synthetic accepts.
type Adapter struct {
	*providers.Base
}

// New creates the Synthetic adapter.
func New() *Adapter {
	return &Adapter{
		Base: providers.NewBase(providers.Profile{
			Name:           displayName,
			Prefix:         prefix,
			DefaultBaseURL: defaultBaseURL,
			APIKeyEnv:      apiKeyEnv,
			APIBaseEnv:     apiBaseEnv,
			ParamRenames: map[string]string{
				"max_completion_tokens": "max_tokens",
			},
		}),
	}
}
