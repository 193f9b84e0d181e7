// Package usecase implements the append-only lead event log.
package usecase

import (
	"context"

	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
)

// EventLogRepository defines the interface for lead event persistence.
type EventLogRepository interface {
	Append(ctx context.Context, entry *eventlogDomain.Entry) error
	ListByLead(ctx context.Context, leadID string, offset, limit int) ([]*eventlogDomain.Entry, error)
}

// EventLogUseCase records and reads the audit trail of leads.
type EventLogUseCase interface {
	// Append writes one entry stamped with the current time. status is the lead status
	// after the action, or empty when the action did not change it.
	Append(
		ctx context.Context,
		leadID string,
		eventType eventlogDomain.EventType,
		details string,
		status string,
	) (*eventlogDomain.Entry, error)
	// ListByLead returns entries newest first.
	ListByLead(ctx context.Context, leadID string, offset, limit int) ([]*eventlogDomain.Entry, error)
}
