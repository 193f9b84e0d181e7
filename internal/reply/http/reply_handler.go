// Package http provides the HTTP endpoint for submitting classified replies.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/outreach/internal/httputil"
	"github.com/allisson/outreach/internal/reply/http/dto"
	replyUseCase "github.com/allisson/outreach/internal/reply/usecase"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// ReplyHandler handles HTTP submissions of classified replies.
type ReplyHandler struct {
	replyUseCase replyUseCase.ReplyUseCase
	logger       *slog.Logger
}

// NewReplyHandler creates a new reply handler.
func NewReplyHandler(replyUseCase replyUseCase.ReplyUseCase, logger *slog.Logger) *ReplyHandler {
	return &ReplyHandler{
		replyUseCase: replyUseCase,
		logger:       logger,
	}
}

// CreateHandler applies a reply to the lead and returns the status it produced.
// POST /v1/leads/:id/replies
func (h *ReplyHandler) CreateHandler(c *gin.Context) {
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	leadID := c.Param("id")
	status, err := h.replyUseCase.ApplyClassifiedReply(c.Request.Context(), req.ToReply(leadID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapReplyToResponse(leadID, status))
}
