package scoring

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoPrompts is returned when a predict request has no prompts.
	ErrNoPrompts = errors.New("scoring: at least one prompt required")

	// ErrNoImage is returned when a predict request has no image.
	ErrNoImage = errors.New("scoring: image required")

	// ErrScoreMismatch is returned when the backend returns a score count
	// that does not match the prompt count.
	ErrScoreMismatch = errors.New("scoring: score count does not match prompt count")

	// ErrProviderUnavailable is returned when no providers are available.
	ErrProviderUnavailable = errors.New("scoring: provider unavailable")

	// ErrAllProvidersFailed is returned when all providers in a chain fail.
	ErrAllProvidersFailed = errors.New("scoring: all providers failed")
)

// APIError represents an error response from a scoring API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Code is the error code (if provided).
	Code string

	// Provider identifies which provider returned the error.
	Provider string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("scoring [%s]: API error %d (%s): %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("scoring [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsUnauthorized returns true if this is an authentication error (HTTP 401).
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// WrapError annotates an error with the provider name.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("scoring [%s]: %w", provider, err)
}

// ChainError aggregates errors from multiple providers.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return ErrAllProvidersFailed.Error()
	}
	msg := ErrAllProvidersFailed.Error()
	for i, err := range e.Errors {
		msg += fmt.Sprintf("; provider %d: %v", i, err)
	}
	return msg
}

// Unwrap lets errors.Is match ErrAllProvidersFailed.
func (e *ChainError) Unwrap() error {
	return ErrAllProvidersFailed
}
