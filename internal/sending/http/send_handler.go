// Package http provides HTTP handlers for approving and sending outreach emails.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/outreach/internal/httputil"
	"github.com/allisson/outreach/internal/sending/http/dto"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// SendHandler handles HTTP requests that approve and send leads.
type SendHandler struct {
	sendUseCase sendingUseCase.SendUseCase
	logger      *slog.Logger
}

// NewSendHandler creates a new send handler.
func NewSendHandler(sendUseCase sendingUseCase.SendUseCase, logger *slog.Logger) *SendHandler {
	return &SendHandler{
		sendUseCase: sendUseCase,
		logger:      logger,
	}
}

// ApproveHandler approves the draft of one lead and sends its next sequence step.
// POST /v1/leads/:id/approve
//
// A blocked admission answers 429 and a provider failure 502; both leave the lead
// sendable. Lifecycle violations answer 409.
func (h *SendHandler) ApproveHandler(c *gin.Context) {
	var req dto.ApproveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	interaction, err := h.sendUseCase.ApproveAndSend(c.Request.Context(), req.ToInput(c.Param("id")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapInteractionToResponse(interaction))
}

// BatchApproveHandler sends every listed lead independently.
// POST /v1/approvals/batch - Returns 200 with the succeeded and failed partitions.
func (h *SendHandler) BatchApproveHandler(c *gin.Context) {
	var req dto.BatchApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.sendUseCase.BatchApprove(c.Request.Context(), req.LeadIDs, req.ToOverrides())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBatchResultToResponse(result))
}
