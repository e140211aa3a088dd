package providers

import (
	"errors"
	"fmt"
)

// MissingCredentialError indicates the API key could not be resolved from the
// explicit argument or the environment. It is surfaced immediately and never
// retried.
type MissingCredentialError struct {
	// Provider is the display name of the provider, e.g. "Synthetic".
	Provider string
}

// Error implements the error interface. The message format is part of the
// provider wire contract, e.g. "Missing Synthetic API Key".
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("Missing %s API Key", e.Provider)
}

// UnsupportedParameterError indicates the caller passed a canonical parameter
// the target provider does not accept and dropping was not requested.
type UnsupportedParameterError struct {
	Provider string
	Param    string
}

// Error implements the error interface.
func (e *UnsupportedParameterError) Error() string {
	return fmt.Sprintf("%s does not support parameter %q", e.Provider, e.Param)
}

// UnknownProviderError indicates an unrecognized provider prefix. It is only
// returned by dispatchers configured strict; the default policy routes
// unknown prefixes to the fallback adapter instead.
type UnknownProviderError struct {
	Prefix string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider prefix %q", e.Prefix)
}

// IsMissingCredential reports whether err is a MissingCredentialError.
func IsMissingCredential(err error) bool {
	var target *MissingCredentialError
	return errors.As(err, &target)
}

// IsUnsupportedParameter reports whether err is an UnsupportedParameterError.
func IsUnsupportedParameter(err error) bool {
	var target *UnsupportedParameterError
	return errors.As(err, &target)
}

// IsUnknownProvider reports whether err is an UnknownProviderError.
func IsUnknownProvider(err error) bool {
	var target *UnknownProviderError
	return errors.As(err, &target)
}
