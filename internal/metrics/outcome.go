package metrics

import apperrors "github.com/allisson/outreach/internal/errors"

// Outcome labels an operation result for the status attribute. Admission refusals,
// lifecycle rejections and provider failures are kept apart from unexpected errors.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, apperrors.ErrAdmissionBlocked):
		return "blocked"
	case apperrors.Is(err, apperrors.ErrInvalidState):
		return "rejected"
	case apperrors.Is(err, apperrors.ErrProviderFailure):
		return "provider_failure"
	case apperrors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case apperrors.Is(err, apperrors.ErrInvalidInput), apperrors.Is(err, apperrors.ErrConflict):
		return "invalid"
	default:
		return "error"
	}
}
