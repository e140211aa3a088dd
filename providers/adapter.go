package providers

// Adapter is the contract every provider backend implements. One instance
// exists per provider, constructed at registration time and shared read-only
// across calls, so implementations must be safe for concurrent use.
type Adapter interface {
	// Profile returns the provider's static configuration.
	Profile() Profile

	// SupportedParams returns the canonical parameter names the provider
	// accepts for the given model.
	SupportedParams(model string) []string

	// MapParams translates canonical parameters into the provider's native
	// request shape. Entries in nonDefault that match a rename rule are
	// written under their native name into optional; supported entries copy
	// through unchanged. Unsupported entries are dropped silently when drop
	// is true, otherwise an *UnsupportedParameterError is returned.
	MapParams(nonDefault, optional map[string]any, model string, drop bool) (map[string]any, error)

	// BuildHeaders merges the provider's auth and content-type headers into
	// the caller-supplied header map and returns it. An empty apiKey yields
	// a *MissingCredentialError naming the provider.
	BuildHeaders(headers map[string]string, model string, messages []Message, optional map[string]any, apiKey, apiBase string) (map[string]string, error)

	// ResolveBaseURL returns apiBase when non-empty, else the provider's
	// default URL. Never fails.
	ResolveBaseURL(apiBase string) string
}

// Message represents a single chat message passed through to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// Profile holds the static, per-provider data consumed by the dispatcher and
// the credential resolver. Profiles are built once at registration and never
// mutated afterwards.
type Profile struct {
	// Name is the human-readable provider name used in error messages,
	// e.g. "Synthetic".
	Name string

	// Prefix is the model identifier prefix routed to this provider,
	// e.g. "synthetic" in "synthetic/gpt-3.5-turbo".
	Prefix string

	// DefaultBaseURL is the compiled-in API base used when the caller
	// supplies none.
	DefaultBaseURL string

	// APIKeyEnv is the environment variable consulted for the API key when
	// no explicit key is given.
	APIKeyEnv string

	// APIBaseEnv is the environment variable consulted for a base URL
	// override when no explicit base is given.
	APIBaseEnv string

	// SupportedParams lists the canonical parameters the provider accepts.
	// A nil slice means the OpenAI-compatible default set.
	SupportedParams []string

	// ParamRenames maps canonical parameter names to provider-native ones,
	// e.g. max_completion_tokens -> max_tokens.
	ParamRenames map[string]string
}

// defaultSupportedParams is the broad OpenAI-compatible parameter set
// inherited by every adapter that does not restrict it.
var defaultSupportedParams = []string{
	"temperature",
	"top_p",
	"n",
	"stream",
	"stream_options",
	"stop",
	"max_tokens",
	"max_completion_tokens",
	"presence_penalty",
	"frequency_penalty",
	"logit_bias",
	"logprobs",
	"top_logprobs",
	"response_format",
	"seed",
	"tools",
	"tool_choice",
	"parallel_tool_calls",
	"functions",
	"function_call",
	"user",
}

// DefaultSupportedParams returns a copy of the OpenAI-compatible canonical
// parameter set.
func DefaultSupportedParams() []string {
	out := make([]string, len(defaultSupportedParams))
	copy(out, defaultSupportedParams)
	return out
}
