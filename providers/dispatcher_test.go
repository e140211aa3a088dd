package providers

import (
	"errors"
	"testing"
)

func newTestDispatcher(t *testing.T, env map[string]string, opts ...Option) *Dispatcher {
	t.Helper()

	registry := NewRegistry()
	if err := registry.Register(NewBase(testProfile())); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	fallback := NewBase(Profile{
		Name:           "Generic",
		Prefix:         "generic",
		DefaultBaseURL: "https://api.generic.example/v1",
		APIKeyEnv:      "GENERIC_API_KEY",
	})

	opts = append([]Option{WithLookup(mapLookup(env))}, opts...)
	return NewDispatcher(registry, fallback, opts...)
}

func TestSplitModel(t *testing.T) {
	tests := []struct {
		model      string
		wantPrefix string
		wantName   string
	}{
		{"acme/gpt-3.5-turbo", "acme", "gpt-3.5-turbo"},
		{"acme/org/custom-model", "acme", "org/custom-model"},
		{"gpt-3.5-turbo", "", "gpt-3.5-turbo"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			prefix, name := SplitModel(tt.model)
			if prefix != tt.wantPrefix || name != tt.wantName {
				t.Errorf("SplitModel(%q) = (%q, %q), want (%q, %q)",
					tt.model, prefix, name, tt.wantPrefix, tt.wantName)
			}
		})
	}
}

func TestDispatcher_Resolve(t *testing.T) {
	d := newTestDispatcher(t, nil)

	t.Run("recognized prefix", func(t *testing.T) {
		adapter, name, err := d.Resolve("acme/gpt-3.5-turbo")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if adapter.Profile().Name != "Acme" {
			t.Errorf("adapter = %q, want Acme", adapter.Profile().Name)
		}
		if name != "gpt-3.5-turbo" {
			t.Errorf("model name = %q, want gpt-3.5-turbo", name)
		}
	})

	t.Run("unknown prefix routes to fallback", func(t *testing.T) {
		adapter, name, err := d.Resolve("foo/bar-model")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if adapter.Profile().Name != "Generic" {
			t.Errorf("adapter = %q, want Generic", adapter.Profile().Name)
		}
		// The full identifier is kept: the fallback provider may understand it.
		if name != "foo/bar-model" {
			t.Errorf("model name = %q, want foo/bar-model", name)
		}
	})

	t.Run("no prefix routes to fallback", func(t *testing.T) {
		adapter, name, err := d.Resolve("gpt-3.5-turbo")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if adapter.Profile().Name != "Generic" {
			t.Errorf("adapter = %q, want Generic", adapter.Profile().Name)
		}
		if name != "gpt-3.5-turbo" {
			t.Errorf("model name = %q, want gpt-3.5-turbo", name)
		}
	})
}

func TestDispatcher_Resolve_Strict(t *testing.T) {
	d := newTestDispatcher(t, nil, Strict(true))

	if _, _, err := d.Resolve("acme/gpt-3.5-turbo"); err != nil {
		t.Fatalf("Resolve() of recognized prefix error = %v", err)
	}

	_, _, err := d.Resolve("foo/bar-model")
	if err == nil {
		t.Fatal("strict Resolve() of unknown prefix succeeded, want error")
	}
	var unknown *UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T, want *UnknownProviderError", err)
	}
	if unknown.Prefix != "foo" {
		t.Errorf("error prefix = %q, want foo", unknown.Prefix)
	}
}

func TestDispatcher_BuildRequest(t *testing.T) {
	d := newTestDispatcher(t, nil)

	desc, err := d.BuildRequest(&Request{
		Model:    "acme/gpt-3.5-turbo",
		Messages: []Message{{Role: "user", Content: "Hello"}},
		Params: map[string]any{
			"temperature":           0.7,
			"max_completion_tokens": 150,
		},
		APIKey: "k",
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}

	if desc.Headers["Authorization"] != "Bearer k" {
		t.Errorf("Authorization = %q, want %q", desc.Headers["Authorization"], "Bearer k")
	}
	if desc.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", desc.Headers["Content-Type"])
	}
	if desc.BaseURL != "https://api.acme.example/v1" {
		t.Errorf("BaseURL = %q, want provider default", desc.BaseURL)
	}

	if desc.BodyParams["model"] != "gpt-3.5-turbo" {
		t.Errorf("body model = %v, want gpt-3.5-turbo", desc.BodyParams["model"])
	}
	if desc.BodyParams["max_tokens"] != 150 {
		t.Errorf("body max_tokens = %v, want 150", desc.BodyParams["max_tokens"])
	}
	if _, present := desc.BodyParams["max_completion_tokens"]; present {
		t.Error("canonical max_completion_tokens leaked into body")
	}
	if desc.BodyParams["temperature"] != 0.7 {
		t.Errorf("body temperature = %v, want 0.7", desc.BodyParams["temperature"])
	}
	messages, ok := desc.BodyParams["messages"].([]Message)
	if !ok || len(messages) != 1 || messages[0].Content != "Hello" {
		t.Errorf("body messages = %v, want the caller's messages", desc.BodyParams["messages"])
	}
}

func TestDispatcher_BuildRequest_MissingKey(t *testing.T) {
	d := newTestDispatcher(t, nil)

	_, err := d.BuildRequest(&Request{
		Model:    "acme/gpt-3.5-turbo",
		Messages: []Message{{Role: "user", Content: "Hello"}},
	})
	if err == nil {
		t.Fatal("BuildRequest() without key succeeded, want error")
	}
	if !IsMissingCredential(err) {
		t.Fatalf("error = %T, want *MissingCredentialError", err)
	}
	if err.Error() != "Missing Acme API Key" {
		t.Errorf("error message = %q, want %q", err.Error(), "Missing Acme API Key")
	}
}

func TestDispatcher_BuildRequest_EnvCredentials(t *testing.T) {
	env := map[string]string{
		"ACME_API_KEY":  "env-key",
		"ACME_API_BASE": "http://proxy.internal:4000",
	}
	d := newTestDispatcher(t, env)

	desc, err := d.BuildRequest(&Request{
		Model:    "acme/gpt-3.5-turbo",
		Messages: []Message{{Role: "user", Content: "Hello"}},
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}
	if desc.Headers["Authorization"] != "Bearer env-key" {
		t.Errorf("Authorization = %q, want env-resolved key", desc.Headers["Authorization"])
	}
	if desc.BaseURL != "http://proxy.internal:4000" {
		t.Errorf("BaseURL = %q, want env override", desc.BaseURL)
	}
}

func TestDispatcher_BuildRequest_UnsupportedParam(t *testing.T) {
	d := newTestDispatcher(t, nil)

	req := &Request{
		Model:  "acme/gpt-3.5-turbo",
		APIKey: "k",
		Params: map[string]any{"thinking_budget": 1024},
	}

	if _, err := d.BuildRequest(req); !IsUnsupportedParameter(err) {
		t.Fatalf("error = %v, want *UnsupportedParameterError", err)
	}

	req.DropUnsupported = true
	desc, err := d.BuildRequest(req)
	if err != nil {
		t.Fatalf("BuildRequest() with drop enabled error = %v", err)
	}
	if _, present := desc.BodyParams["thinking_budget"]; present {
		t.Error("unsupported param present in body despite drop")
	}
}

func TestDispatcher_BuildRequest_DoesNotMutateCallerMaps(t *testing.T) {
	d := newTestDispatcher(t, nil)

	params := map[string]any{"max_completion_tokens": 99}
	native := map[string]any{"stream": true}
	headers := map[string]string{"X-Trace": "t1"}

	desc, err := d.BuildRequest(&Request{
		Model:        "acme/gpt-3.5-turbo",
		APIKey:       "k",
		Params:       params,
		NativeParams: native,
		Headers:      headers,
	})
	if err != nil {
		t.Fatalf("BuildRequest() error = %v", err)
	}

	if len(params) != 1 || len(native) != 1 || len(headers) != 1 {
		t.Error("caller-owned maps were mutated")
	}
	if desc.BodyParams["stream"] != true {
		t.Error("native param missing from body")
	}
	if desc.Headers["X-Trace"] != "t1" {
		t.Error("caller header missing from descriptor")
	}
}
