// Package http provides HTTP handlers for the lead pipeline.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/outreach/internal/httputil"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/lead/http/dto"
	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// LeadHandler handles HTTP requests for lead ingestion, pipeline steps and audit reads.
type LeadHandler struct {
	leadUseCase leadUseCase.LeadUseCase
	logger      *slog.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(leadUseCase leadUseCase.LeadUseCase, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
		logger:      logger,
	}
}

// IngestHandler adds a prospect to the pipeline.
// POST /v1/leads - Returns 201 Created with the new lead.
func (h *LeadHandler) IngestHandler(c *gin.Context) {
	var req dto.IngestLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	lead, err := h.leadUseCase.Ingest(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapLeadToResponse(lead))
}

// GetHandler retrieves a lead by ID.
// GET /v1/leads/:id
func (h *LeadHandler) GetHandler(c *gin.Context) {
	lead, err := h.leadUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLeadToResponse(lead))
}

// ListHandler lists leads newest first.
// GET /v1/leads?status=sent_step0&offset=0&limit=50
func (h *LeadHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c, httputil.ListPage)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var status *leadDomain.Status
	if raw := c.Query("status"); raw != "" {
		parsed, err := leadDomain.ParseStatus(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
		status = &parsed
	}

	leads, err := h.leadUseCase.List(c.Request.Context(), status, page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLeadsToListResponse(leads))
}

// EnrichmentHandler attaches company research and moves the lead to enriched.
// PUT /v1/leads/:id/enrichment
func (h *LeadHandler) EnrichmentHandler(c *gin.Context) {
	var req dto.EnrichmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	lead, err := h.leadUseCase.RecordEnrichment(c.Request.Context(), c.Param("id"), req.CompanySummary,
		req.ProductSummary)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLeadToResponse(lead))
}

// DraftHandler stores the generated copy and moves the lead to processed.
// PUT /v1/leads/:id/draft
func (h *LeadHandler) DraftHandler(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	lead, err := h.leadUseCase.RecordDraft(c.Request.Context(), c.Param("id"), req.Subject, req.Body)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLeadToResponse(lead))
}

// StopHandler takes the lead out of the sequence.
// POST /v1/leads/:id/stop
func (h *LeadHandler) StopHandler(c *gin.Context) {
	lead, err := h.leadUseCase.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLeadToResponse(lead))
}

// LogsHandler returns the audit trail of a lead, newest first.
// GET /v1/leads/:id/logs?offset=0&limit=50
func (h *LeadHandler) LogsHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c, httputil.LogPage)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.leadUseCase.Logs(c.Request.Context(), c.Param("id"), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}
