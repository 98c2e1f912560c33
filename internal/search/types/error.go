package types

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidProviderID   = errors.New("invalid provider ID")
	ErrInvalidProviderName = errors.New("invalid provider name")
	ErrMissingAPIKey       = errors.New("missing API key")

	// Request errors
	ErrEmptySubject      = errors.New("empty search subject")
	ErrInvalidMaxResults = errors.New("max results out of range")

	// Provider errors
	ErrProviderNotFound    = errors.New("provider not found")
	ErrProviderQuota       = errors.New("provider quota exceeded")
	ErrProviderUnavailable = errors.New("provider not available")

	// Response errors
	ErrInvalidResponse = errors.New("invalid response from provider")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider ProviderID
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
