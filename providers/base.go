package providers

// Base is the OpenAI-compatible default implementation of Adapter. Provider
// packages embed it and customize behavior through their Profile: the
// supported parameter set, the rename table, and the credential/base-URL
// defaults. All methods are pure and safe for concurrent use.
type Base struct {
	profile   Profile
	supported map[string]struct{}
}

// NewBase builds an adapter from a profile. A profile without an explicit
// SupportedParams list inherits the OpenAI-compatible default set.
func NewBase(p Profile) *Base {
	if p.SupportedParams == nil {
		p.SupportedParams = DefaultSupportedParams()
	}
	supported := make(map[string]struct{}, len(p.SupportedParams))
	for _, name := range p.SupportedParams {
		supported[name] = struct{}{}
	}
	return &Base{profile: p, supported: supported}
}

// Profile returns the provider's static configuration.
func (b *Base) Profile() Profile {
	return b.profile
}

// SupportedParams returns the canonical parameters this provider accepts for
// the given model.
func (b *Base) SupportedParams(model string) []string {
	out := make([]string, len(b.profile.SupportedParams))
	copy(out, b.profile.SupportedParams)
	return out
}

// MapParams rewrites canonical parameters into the provider's native shape.
// Renamed parameters are written under their native name, supported ones copy
// through unchanged, and unsupported ones are either dropped (drop=true) or
// rejected with an *UnsupportedParameterError.
func (b *Base) MapParams(nonDefault, optional map[string]any, model string, drop bool) (map[string]any, error) {
	if optional == nil {
		optional = make(map[string]any, len(nonDefault))
	}
	for name, value := range nonDefault {
		if native, ok := b.profile.ParamRenames[name]; ok {
			optional[native] = value
			continue
		}
		if _, ok := b.supported[name]; ok {
			optional[name] = value
			continue
		}
		if drop {
			continue
		}
		return nil, &UnsupportedParameterError{Provider: b.profile.Name, Param: name}
	}
	return optional, nil
}

// BuildHeaders merges the bearer auth and content-type headers into the
// caller-supplied map. Other caller-supplied keys are preserved; these two
// are always overwritten.
func (b *Base) BuildHeaders(headers map[string]string, model string, messages []Message, optional map[string]any, apiKey, apiBase string) (map[string]string, error) {
	if apiKey == "" {
		return nil, &MissingCredentialError{Provider: b.profile.Name}
	}
	if headers == nil {
		headers = make(map[string]string, 2)
	}
	headers["Authorization"] = "Bearer " + apiKey
	headers["Content-Type"] = "application/json"
	return headers, nil
}

// ResolveBaseURL returns apiBase when non-empty, else the provider default.
func (b *Base) ResolveBaseURL(apiBase string) string {
	if apiBase != "" {
		return apiBase
	}
	return b.profile.DefaultBaseURL
}
