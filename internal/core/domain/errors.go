// Package domain defines the error taxonomy shared across the toolkit.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument means the settings text could not be parsed as
	// JSON-with-comments. Nothing is mutated when this is returned.
	ErrMalformedDocument = errors.New("settings document is not valid JSON-with-comments")

	// ErrInvalidPath means a patch path collides with an existing
	// non-container value. Patches are all-or-nothing, so the document is
	// untouched when this is returned.
	ErrInvalidPath = errors.New("path traverses a non-container value")
)

// SourceFetchError wraps a failure talking to a provider's model listing.
// Fatal to the calling operation: nothing gets persisted.
type SourceFetchError struct {
	Provider string
	Err      error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetching models from provider %q: %v", e.Provider, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// RegistryFetchError wraps a failure talking to the public model registry.
// Callers on the fallback path swallow it and degrade to defaults.
type RegistryFetchError struct {
	URL string
	Err error
}

func (e *RegistryFetchError) Error() string {
	return fmt.Sprintf("fetching model registry %s: %v", e.URL, e.Err)
}

func (e *RegistryFetchError) Unwrap() error { return e.Err }
