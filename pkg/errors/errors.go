// Package errors provides common domain error types for the mentor pipeline.
//
// This package defines sentinel errors for conditions like "not found" or
// "missing configuration" that can be used across all packages. Using typed
// errors enables consistent error handling patterns with errors.Is() checks.
//
// Usage:
//
//	import mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
//
//	// Return a domain error
//	return nil, mperrors.ErrNotFound
//
//	// Check for domain errors
//	if mperrors.IsNotFound(err) {
//	    // handle not found case
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates an expected file or resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")

	// ErrMissingConfig indicates a required credential or setting is absent.
	// Runs fail fast on this error with no partial write.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrUnknownUtterance indicates an update referenced an utterance id
	// that is not in the map. This is a logic bug in the merge, not a
	// recoverable external condition, so it aborts the stage.
	ErrUnknownUtterance = errors.New("unknown utterance id")

	// ErrInvalidState indicates the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsMissingConfig reports whether any error in err's chain is ErrMissingConfig.
func IsMissingConfig(err error) bool {
	return errors.Is(err, ErrMissingConfig)
}

// IsUnknownUtterance reports whether any error in err's chain is ErrUnknownUtterance.
func IsUnknownUtterance(err error) bool {
	return errors.Is(err, ErrUnknownUtterance)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
