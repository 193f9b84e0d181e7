// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return them wrapped with context and
// handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared by every module.
var (
	// ErrNotFound indicates the referenced lead, campaign or metric row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a concurrent modification or a duplicate key.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates the precondition for a lifecycle transition does not hold.
	// The caller may retry once the state changes.
	ErrInvalidState = errors.New("invalid state")

	// ErrAdmissionBlocked indicates admission control refused a send (cap, throttle,
	// blacklist or paused campaign). It resolves over time.
	ErrAdmissionBlocked = errors.New("admission blocked")

	// ErrProviderFailure indicates an external capability failed or timed out.
	// Lead state is left unchanged so the operation can be retried.
	ErrProviderFailure = errors.New("provider failure")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsRecoverable reports whether err is a rejection the caller can act on
// (invalid state, admission block or provider failure) rather than a fatal fault.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrAdmissionBlocked) ||
		errors.Is(err, ErrProviderFailure)
}
