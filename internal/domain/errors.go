package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the offer search system.
// Callers match them with errors.Is; additional context is attached with
// fmt.Errorf("%w: ...").
var (
	// ErrInvalidRequest indicates the search criteria failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotConfigured indicates a provider's access credential is absent.
	// Optional providers treat this as zero results; the primary provider's
	// absence is surfaced by the route layer as a server-side failure.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrProviderUnavailable matches any ProviderUnavailableError via errors.Is.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrQuotaExceeded indicates the caller has used up its free searches.
	ErrQuotaExceeded = errors.New("search quota exceeded")

	// ErrNoProviders indicates no provider adapters are registered.
	ErrNoProviders = errors.New("no providers registered")
)

// ProviderUnavailableError reports a transport failure or a non-success HTTP
// status from a provider. For the primary provider it propagates as the
// overall search failure; for optional providers the aggregator logs it and
// proceeds with whatever the other providers returned.
type ProviderUnavailableError struct {
	// Provider is the name of the failing provider.
	Provider string

	// Status is the upstream HTTP status code, or 0 on transport failure.
	Status int

	// Message carries the upstream error detail, truncated by the adapter.
	Message string
}

// Error implements the error interface.
func (e *ProviderUnavailableError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider %s unavailable: status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("provider %s unavailable: %s", e.Provider, e.Message)
}

// Is lets errors.Is(err, ErrProviderUnavailable) match this error type.
func (e *ProviderUnavailableError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// NewProviderUnavailable creates a ProviderUnavailableError for an upstream
// HTTP status. Use status 0 for transport-level failures.
func NewProviderUnavailable(provider string, status int, message string) *ProviderUnavailableError {
	return &ProviderUnavailableError{
		Provider: provider,
		Status:   status,
		Message:  message,
	}
}
