package usecase

import (
	"context"
	"time"

	"github.com/allisson/outreach/internal/metrics"
)

// sendUseCaseWithMetrics decorates SendUseCase with metrics instrumentation.
type sendUseCaseWithMetrics struct {
	next    SendUseCase
	metrics metrics.BusinessMetrics
}

// NewSendUseCaseWithMetrics wraps a SendUseCase with metrics recording.
func NewSendUseCaseWithMetrics(useCase SendUseCase, m metrics.BusinessMetrics) SendUseCase {
	return &sendUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ApproveAndSend records metrics for single sends.
func (s *sendUseCaseWithMetrics) ApproveAndSend(ctx context.Context, input ApproveInput) (*EmailInteraction, error) {
	start := time.Now()
	interaction, err := s.next.ApproveAndSend(ctx, input)
	s.metrics.ObserveOperation(ctx, "sending", "approve_and_send", time.Since(start), err)
	if err == nil {
		s.metrics.RecordLeadStatus(ctx, interaction.Status.String())
	}

	return interaction, err
}

// BatchApprove records metrics for batch sends.
func (s *sendUseCaseWithMetrics) BatchApprove(
	ctx context.Context,
	leadIDs []string,
	overrides map[string]Overrides,
) (*BatchResult, error) {
	start := time.Now()
	result, err := s.next.BatchApprove(ctx, leadIDs, overrides)
	s.metrics.ObserveOperation(ctx, "sending", "batch_approve", time.Since(start), err)
	if err == nil {
		for _, interaction := range result.Succeeded {
			s.metrics.RecordLeadStatus(ctx, interaction.Status.String())
		}
	}

	return result, err
}
