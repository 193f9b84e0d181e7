package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
)

// RunLeadLogs prints the audit trail of one lead, newest first.
func RunLeadLogs(
	ctx context.Context,
	useCase leadUseCase.LeadUseCase,
	logger *slog.Logger,
	writer io.Writer,
	leadID string,
	limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if limit <= 0 || limit > 1000 {
		return fmt.Errorf("limit must be between 1 and 1000, got: %d", limit)
	}

	entries, err := useCase.Logs(ctx, leadID, 0, limit)
	if err != nil {
		return fmt.Errorf("failed to read logs of lead %s: %w", leadID, err)
	}
	logger.Debug("lead logs read", slog.String("lead_id", leadID), slog.Int("count", len(entries)))

	if format == "json" {
		data := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			data = append(data, map[string]any{
				"id":         entry.ID,
				"event_type": string(entry.EventType),
				"details":    entry.Details,
				"status":     entry.Status,
				"created_at": entry.CreatedAt.Format(time.RFC3339),
			})
		}
		return writeJSON(writer, map[string]any{"lead_id": leadID, "data": data})
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintf(writer, "No events recorded for lead %s\n", leadID)
		return nil
	}
	for _, entry := range entries {
		_, _ = fmt.Fprintf(writer, "%s  %-15s %-22s %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.EventType,
			entry.Status,
			entry.Details,
		)
	}
	return nil
}
