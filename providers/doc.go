// Package providers implements the provider adapter and dispatch core shared
// by every LLM backend: a polymorphic Adapter contract covering parameter
// mapping, header construction and base-URL resolution, a prefix-keyed
// registry, a credential resolver with explicit-arg > environment > default
// precedence, and the Dispatcher that assembles a ready-to-send
// RequestDescriptor from a "provider/model" identifier.
//
// Each call is a stateless pipeline over the read-only registry; adapters and
// the dispatcher are safe for concurrent use once registration completes.
package providers
