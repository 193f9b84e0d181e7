package usecase

import (
	"context"

	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
)

type eventLogUseCase struct {
	repo  EventLogRepository
	clock clock.Clock
}

func (e *eventLogUseCase) Append(
	ctx context.Context,
	leadID string,
	eventType eventlogDomain.EventType,
	details string,
	status string,
) (*eventlogDomain.Entry, error) {
	entry := &eventlogDomain.Entry{
		LeadID:    leadID,
		EventType: eventType,
		Details:   details,
		Status:    status,
		CreatedAt: e.clock.Now().UTC(),
	}

	if err := e.repo.Append(ctx, entry); err != nil {
		return nil, apperrors.Wrapf(err, "failed to log %s for lead %s", eventType, leadID)
	}
	return entry, nil
}

func (e *eventLogUseCase) ListByLead(
	ctx context.Context,
	leadID string,
	offset, limit int,
) ([]*eventlogDomain.Entry, error) {
	entries, err := e.repo.ListByLead(ctx, leadID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list lead events")
	}
	return entries, nil
}

// NewEventLogUseCase creates a new EventLogUseCase.
func NewEventLogUseCase(repo EventLogRepository, clk clock.Clock) EventLogUseCase {
	return &eventLogUseCase{repo: repo, clock: clk}
}
