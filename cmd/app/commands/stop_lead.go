package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
)

// RunStopLead takes a lead out of the sequence manually.
func RunStopLead(
	ctx context.Context,
	useCase leadUseCase.LeadUseCase,
	logger *slog.Logger,
	writer io.Writer,
	leadID string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	lead, err := useCase.Stop(ctx, leadID)
	if err != nil {
		return fmt.Errorf("failed to stop lead %s: %w", leadID, err)
	}
	logger.Info("lead stopped", slog.String("lead_id", lead.ID))

	if format == "json" {
		return writeJSON(writer, map[string]any{"lead_id": lead.ID, "status": lead.Status.String()})
	}
	_, _ = fmt.Fprintf(writer, "Lead %s is now %s\n", lead.ID, lead.Status)
	return nil
}
