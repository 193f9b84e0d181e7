package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	dailymetricUseCase "github.com/allisson/outreach/internal/dailymetric/usecase"
)

// RunDailyMetrics prints the counters of date (YYYY-MM-DD), or of today when date is empty.
func RunDailyMetrics(
	ctx context.Context,
	useCase dailymetricUseCase.DailyMetricUseCase,
	logger *slog.Logger,
	writer io.Writer,
	date string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var metric *dailymetricDomain.DailyMetric
	var err error
	if date == "" {
		metric, err = useCase.Today(ctx)
	} else {
		if _, parseErr := time.Parse(dailymetricDomain.DateLayout, date); parseErr != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %s", date)
		}
		metric, err = useCase.Get(ctx, date)
	}
	if err != nil {
		return fmt.Errorf("failed to read daily metrics: %w", err)
	}
	logger.Debug("daily metrics read", slog.String("date", metric.Date))

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"date":           metric.Date,
			"sent_count":     metric.SentCount,
			"reply_count":    metric.ReplyCount,
			"positive_count": metric.PositiveCount,
			"bounce_count":   metric.BounceCount,
		})
	}

	_, _ = fmt.Fprintf(writer, "Outreach metrics for %s\n", metric.Date)
	_, _ = fmt.Fprintf(writer, "==============================\n\n")
	_, _ = fmt.Fprintf(writer, "Sent:     %d\n", metric.SentCount)
	_, _ = fmt.Fprintf(writer, "Replies:  %d\n", metric.ReplyCount)
	_, _ = fmt.Fprintf(writer, "Positive: %d\n", metric.PositiveCount)
	_, _ = fmt.Fprintf(writer, "Bounces:  %d\n", metric.BounceCount)
	return nil
}
