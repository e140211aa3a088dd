package providers

import "strings"

// Request carries the provider-agnostic inputs for a single call. The maps it
// references are never mutated by the dispatcher; mapped output lands in a
// fresh RequestDescriptor owned by the call.
type Request struct {
	// Model is the identifier of form "provider/model-name". An identifier
	// without a recognized prefix routes to the fallback adapter.
	Model string

	// Messages is the conversation handed through to the provider.
	Messages []Message

	// Params maps canonical parameter names to values, e.g. "temperature"
	// or "max_completion_tokens".
	Params map[string]any

	// NativeParams holds parameters already in provider-native form. They
	// are copied into the body before canonical mapping runs.
	NativeParams map[string]any

	// APIKey and APIBase override credential resolution when non-empty.
	APIKey  string
	APIBase string

	// Headers are caller-supplied headers preserved in the descriptor,
	// except for the auth and content-type keys the adapter owns.
	Headers map[string]string

	// DropUnsupported silently omits parameters the provider does not
	// accept instead of failing the call.
	DropUnsupported bool
}

// RequestDescriptor is the ready-to-send artifact handed to the transport
// layer: resolved headers, base URL, and the provider-native body.
type RequestDescriptor struct {
	Headers    map[string]string
	BaseURL    string
	BodyParams map[string]any
}

// Dispatcher resolves model identifiers to provider adapters and assembles
// request descriptors. It holds only read-only registry data and is safe for
// unsynchronized concurrent use.
type Dispatcher struct {
	registry *Registry
	fallback Adapter
	lookup   LookupFunc
	strict   bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLookup injects the environment lookup used for credential resolution.
// Defaults to os.LookupEnv.
func WithLookup(lookup LookupFunc) Option {
	return func(d *Dispatcher) {
		d.lookup = lookup
	}
}

// Strict makes unrecognized provider prefixes fail with an
// *UnknownProviderError instead of routing to the fallback adapter.
func Strict(strict bool) Option {
	return func(d *Dispatcher) {
		d.strict = strict
	}
}

// NewDispatcher creates a dispatcher over a populated registry. The fallback
// adapter handles identifiers with no recognized prefix; it is required
// unless the dispatcher is strict.
func NewDispatcher(registry *Registry, fallback Adapter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SplitModel splits a model identifier on its first "/" into provider prefix
// and native model name. An identifier without a slash has an empty prefix.
func SplitModel(model string) (prefix, name string) {
	if before, after, found := strings.Cut(model, "/"); found {
		return before, after
	}
	return "", model
}

// Resolve selects the adapter for a model identifier and returns it together
// with the provider-native model name. Unknown prefixes route to the fallback
// adapter with the full identifier as the model name, unless strict.
func (d *Dispatcher) Resolve(model string) (Adapter, string, error) {
	prefix, name := SplitModel(model)
	if prefix != "" {
		if adapter, err := d.registry.Get(prefix); err == nil {
			return adapter, name, nil
		}
	}
	if d.strict {
		return nil, "", &UnknownProviderError{Prefix: prefix}
	}
	return d.fallback, model, nil
}

// BuildRequest runs the full pipeline for one call: resolve the adapter,
// resolve credentials, map parameters, build headers, and resolve the base
// URL, in that fixed order. The returned descriptor is owned by the caller.
func (d *Dispatcher) BuildRequest(req *Request) (*RequestDescriptor, error) {
	adapter, modelName, err := d.Resolve(req.Model)
	if err != nil {
		return nil, err
	}
	profile := adapter.Profile()

	creds, err := ResolveCredentials(req.APIKey, req.APIBase, d.lookup, profile)
	if err != nil {
		return nil, err
	}

	// The caller keeps ownership of its maps; mapping runs on copies.
	optional := make(map[string]any, len(req.NativeParams)+len(req.Params))
	for name, value := range req.NativeParams {
		optional[name] = value
	}
	optional, err = adapter.MapParams(req.Params, optional, modelName, req.DropUnsupported)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(req.Headers)+2)
	for name, value := range req.Headers {
		headers[name] = value
	}
	headers, err = adapter.BuildHeaders(headers, modelName, req.Messages, optional, creds.APIKey, creds.APIBase)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any, len(optional)+2)
	for name, value := range optional {
		body[name] = value
	}
	body["model"] = modelName
	body["messages"] = req.Messages

	return &RequestDescriptor{
		Headers:    headers,
		BaseURL:    adapter.ResolveBaseURL(creds.APIBase),
		BodyParams: body,
	}, nil
}
