// Package http provides HTTP handlers for campaign management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/outreach/internal/campaign/http/dto"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
	"github.com/allisson/outreach/internal/httputil"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// CampaignHandler handles HTTP requests for campaign operations.
type CampaignHandler struct {
	campaignUseCase campaignUseCase.CampaignUseCase
	logger          *slog.Logger
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(campaignUseCase campaignUseCase.CampaignUseCase, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignUseCase: campaignUseCase,
		logger:          logger,
	}
}

// CreateHandler creates a campaign.
// POST /v1/campaigns - Returns 201 Created.
func (h *CampaignHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	campaign, err := h.campaignUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCampaignToResponse(campaign))
}

// GetHandler retrieves a campaign by ID.
// GET /v1/campaigns/:id
func (h *CampaignHandler) GetHandler(c *gin.Context) {
	campaign, err := h.campaignUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCampaignToResponse(campaign))
}

// ListHandler lists campaigns with pagination.
// GET /v1/campaigns?offset=0&limit=50
func (h *CampaignHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c, httputil.ListPage)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	campaigns, err := h.campaignUseCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCampaignsToListResponse(campaigns))
}

// PauseHandler suspends sending for every lead of the campaign.
// POST /v1/campaigns/:id/pause
func (h *CampaignHandler) PauseHandler(c *gin.Context) {
	campaign, err := h.campaignUseCase.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCampaignToResponse(campaign))
}

// ResumeHandler re-enables sending for the campaign.
// POST /v1/campaigns/:id/resume
func (h *CampaignHandler) ResumeHandler(c *gin.Context) {
	campaign, err := h.campaignUseCase.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCampaignToResponse(campaign))
}
