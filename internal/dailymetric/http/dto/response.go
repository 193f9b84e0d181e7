// Package dto provides data transfer objects for the daily metrics HTTP API.
package dto

import dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"

// DailyMetricResponse represents the counters of one date.
type DailyMetricResponse struct {
	Date          string `json:"date"`
	SentCount     int    `json:"sent_count"`
	ReplyCount    int    `json:"reply_count"`
	PositiveCount int    `json:"positive_count"`
	BounceCount   int    `json:"bounce_count"`
}

// MapDailyMetricToResponse converts a daily metric row to an API response.
func MapDailyMetricToResponse(metric *dailymetricDomain.DailyMetric) DailyMetricResponse {
	return DailyMetricResponse{
		Date:          metric.Date,
		SentCount:     metric.SentCount,
		ReplyCount:    metric.ReplyCount,
		PositiveCount: metric.PositiveCount,
		BounceCount:   metric.BounceCount,
	}
}
