package domain

import (
	"github.com/allisson/outreach/internal/errors"
)

// Lead lifecycle errors.
var (
	// ErrLeadNotFound indicates a lead with the specified ID was not found.
	ErrLeadNotFound = errors.Wrap(errors.ErrNotFound, "lead not found")

	// ErrLeadStopped indicates the lead is in a stopped_* status.
	ErrLeadStopped = errors.Wrap(errors.ErrInvalidState, "lead stopped")

	// ErrLeadReplied indicates the lead already replied and leaves the sequence.
	ErrLeadReplied = errors.Wrap(errors.ErrInvalidState, "lead already replied")

	// ErrLeadNotReady indicates the lead has no approved draft yet.
	ErrLeadNotReady = errors.Wrap(errors.ErrInvalidState, "lead not ready to send")

	// ErrDuplicateSend indicates the requested sequence step was already sent.
	ErrDuplicateSend = errors.Wrap(errors.ErrInvalidState, "sequence step already sent")

	// ErrStepOutOfOrder indicates a step beyond the next one was requested.
	ErrStepOutOfOrder = errors.Wrap(errors.ErrInvalidState, "sequence step out of order")

	// ErrInvalidTransition indicates the event is not allowed from the current status.
	ErrInvalidTransition = errors.Wrap(errors.ErrInvalidState, "invalid status transition")

	// ErrConcurrentUpdate indicates the stored lead changed between read and write.
	ErrConcurrentUpdate = errors.Wrap(errors.ErrConflict, "lead modified concurrently")

	// ErrInvalidStatus indicates a persisted status string could not be parsed.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid lead status")

	// ErrInvalidCategory indicates a reply classification outside the fixed set.
	ErrInvalidCategory = errors.Wrap(errors.ErrInvalidInput, "invalid reply classification")

	// ErrNoRecipient indicates the lead has no email address to send to.
	ErrNoRecipient = errors.Wrap(errors.ErrInvalidState, "lead has no email address")
)
