// Package http provides HTTP handlers for reading daily outreach counters.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/outreach/internal/dailymetric/http/dto"
	dailymetricUseCase "github.com/allisson/outreach/internal/dailymetric/usecase"
	"github.com/allisson/outreach/internal/httputil"
)

// DailyMetricHandler handles HTTP requests for daily counters.
type DailyMetricHandler struct {
	dailyMetricUseCase dailymetricUseCase.DailyMetricUseCase
	logger             *slog.Logger
}

// NewDailyMetricHandler creates a new daily metric handler.
func NewDailyMetricHandler(
	dailyMetricUseCase dailymetricUseCase.DailyMetricUseCase,
	logger *slog.Logger,
) *DailyMetricHandler {
	return &DailyMetricHandler{
		dailyMetricUseCase: dailyMetricUseCase,
		logger:             logger,
	}
}

// TodayHandler returns the counters of the current local date.
// GET /v1/metrics/today
func (h *DailyMetricHandler) TodayHandler(c *gin.Context) {
	metric, err := h.dailyMetricUseCase.Today(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDailyMetricToResponse(metric))
}

// GetHandler returns the counters of a given date; a date with no activity is all zeros.
// GET /v1/metrics/days/:date
func (h *DailyMetricHandler) GetHandler(c *gin.Context) {
	metric, err := h.dailyMetricUseCase.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDailyMetricToResponse(metric))
}
