package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/outreach/internal/httputil"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

// RunBatchApprove sends every lead of the comma-separated leadIDs independently and
// reports each outcome. It fails when at least one lead was not sent.
func RunBatchApprove(
	ctx context.Context,
	useCase sendingUseCase.SendUseCase,
	logger *slog.Logger,
	writer io.Writer,
	leadIDs string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	ids := splitList(leadIDs)
	if len(ids) == 0 {
		return errors.New("at least one lead id is required")
	}

	result, err := useCase.BatchApprove(ctx, ids, nil)
	if err != nil {
		return fmt.Errorf("failed to run batch: %w", err)
	}

	logger.Info("batch approved",
		slog.Int("requested", len(ids)),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
	)

	if format == "json" {
		if err := outputBatchJSON(writer, result); err != nil {
			return err
		}
	} else {
		outputBatchText(writer, result)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d lead(s) were not sent", len(result.Failed), len(ids))
	}
	return nil
}

func outputBatchText(writer io.Writer, result *sendingUseCase.BatchResult) {
	_, _ = fmt.Fprintf(writer, "Succeeded: %d\n", len(result.Succeeded))
	for _, interaction := range result.Succeeded {
		_, _ = fmt.Fprintf(writer, "  - %s  %s\n", interaction.LeadID, interaction.Status)
	}
	_, _ = fmt.Fprintf(writer, "Failed:    %d\n", len(result.Failed))
	for _, failure := range result.Failed {
		_, _ = fmt.Fprintf(writer, "  - %s  %s\n", failure.LeadID, failure.Reason)
	}
}

func outputBatchJSON(writer io.Writer, result *sendingUseCase.BatchResult) error {
	succeeded := make([]map[string]any, 0, len(result.Succeeded))
	for _, interaction := range result.Succeeded {
		succeeded = append(succeeded, interactionJSON(interaction))
	}
	failed := make([]map[string]any, 0, len(result.Failed))
	for _, failure := range result.Failed {
		failed = append(failed, map[string]any{
			"lead_id": failure.LeadID,
			"error":   httputil.ErrorCode(failure.Err),
			"reason":  failure.Reason,
		})
	}
	return writeJSON(writer, map[string]any{"succeeded": succeeded, "failed": failed})
}
