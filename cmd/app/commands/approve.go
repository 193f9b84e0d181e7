package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

// RunApprove approves and sends the next step of one lead. A negative step sends
// whatever step is next; subject and body override the stored draft when not empty.
func RunApprove(
	ctx context.Context,
	useCase sendingUseCase.SendUseCase,
	logger *slog.Logger,
	writer io.Writer,
	leadID string,
	step int,
	subject, body string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	input := sendingUseCase.ApproveInput{
		LeadID:    leadID,
		Overrides: overrides(subject, body),
	}
	if step >= 0 {
		input.Step = &step
	}

	interaction, err := useCase.ApproveAndSend(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send lead %s: %w", leadID, err)
	}

	logger.Info("lead sent",
		slog.String("lead_id", interaction.LeadID),
		slog.Int("step", interaction.Step),
		slog.String("message_id", interaction.MessageID),
	)

	if format == "json" {
		return writeJSON(writer, interactionJSON(interaction))
	}
	_, _ = fmt.Fprintf(writer, "Sent step %d to lead %s\n", interaction.Step, interaction.LeadID)
	_, _ = fmt.Fprintf(writer, "Status:     %s\n", interaction.Status)
	_, _ = fmt.Fprintf(writer, "Message ID: %s\n", interaction.MessageID)
	_, _ = fmt.Fprintf(writer, "Subject:    %s\n", interaction.Subject)
	return nil
}

func overrides(subject, body string) sendingUseCase.Overrides {
	var o sendingUseCase.Overrides
	if subject != "" {
		o.Subject = &subject
	}
	if body != "" {
		o.Body = &body
	}
	return o
}

func interactionJSON(interaction *sendingUseCase.EmailInteraction) map[string]any {
	return map[string]any{
		"lead_id":    interaction.LeadID,
		"step":       interaction.Step,
		"status":     interaction.Status.String(),
		"message_id": interaction.MessageID,
		"thread_id":  interaction.ThreadID,
		"subject":    interaction.Subject,
		"sent_at":    interaction.SentAt.Format(time.RFC3339),
	}
}
