// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/outreach/internal/errors"
)

// ErrorCodeKey is the gin context key holding the error code of a failed request,
// read by the HTTP metrics middleware.
const ErrorCodeKey = "error_code"

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Rejections carry the error text so callers can see which guard refused them.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := mapError(err)

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	WriteError(c, statusCode, errorResponse)
}

// WriteError records the error code on the context and writes the response.
func WriteError(c *gin.Context, statusCode int, resp ErrorResponse) {
	c.Set(ErrorCodeKey, resp.Error)
	c.JSON(statusCode, resp)
}

// ErrorCode returns the machine-readable code HandleErrorGin would use for err.
func ErrorCode(err error) string {
	_, errorResponse := mapError(err)
	return errorResponse.Error
}

func mapError(err error) (statusCode int, errorResponse ErrorResponse) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidState):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "invalid_state",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{
			Error:   "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrAdmissionBlocked):
		statusCode = http.StatusTooManyRequests
		errorResponse = ErrorResponse{
			Error:   "admission_blocked",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrProviderFailure):
		statusCode = http.StatusBadGateway
		errorResponse = ErrorResponse{
			Error:   "provider_failure",
			Message: "The email provider did not confirm delivery",
		}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}
	return statusCode, errorResponse
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	WriteError(c, http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	WriteError(c, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
