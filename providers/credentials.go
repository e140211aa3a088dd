package providers

import "os"

// LookupFunc resolves a configuration variable by name. It matches the
// signature of os.LookupEnv so the process environment can be injected
// directly, while tests supply a map-backed lookup instead of mutating
// global state.
type LookupFunc func(name string) (string, bool)

// Credentials is the resolved {api key, api base} pair for a single call.
// It is never persisted or shared across calls.
type Credentials struct {
	APIKey  string
	APIBase string
}

// ResolveCredentials produces the credentials for one call using the
// precedence explicit argument, then environment, then provider default.
// Only the base URL has a provider default; an API key that remains
// unresolved yields a *MissingCredentialError naming the provider.
func ResolveCredentials(apiKey, apiBase string, lookup LookupFunc, p Profile) (Credentials, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	key := apiKey
	if key == "" && p.APIKeyEnv != "" {
		if v, ok := lookup(p.APIKeyEnv); ok {
			key = v
		}
	}
	if key == "" {
		return Credentials{}, &MissingCredentialError{Provider: p.Name}
	}

	base := apiBase
	if base == "" && p.APIBaseEnv != "" {
		if v, ok := lookup(p.APIBaseEnv); ok {
			base = v
		}
	}
	if base == "" {
		base = p.DefaultBaseURL
	}

	return Credentials{APIKey: key, APIBase: base}, nil
}
