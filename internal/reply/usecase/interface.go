// Package usecase applies classified inbound replies to leads.
package usecase

import (
	"context"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	outboxDomain "github.com/allisson/outreach/internal/outbox/domain"
	replyDomain "github.com/allisson/outreach/internal/reply/domain"
)

// LeadRepository defines the lead persistence used by the reply transition.
type LeadRepository interface {
	Get(ctx context.Context, id string) (*leadDomain.Lead, error)
	CompareAndSwap(
		ctx context.Context,
		lead *leadDomain.Lead,
		expectedStatus leadDomain.Status,
		expectedSendCount int,
	) error
}

// EventLogger appends to the lead event log.
type EventLogger interface {
	Append(
		ctx context.Context,
		leadID string,
		eventType eventlogDomain.EventType,
		details string,
		status string,
	) (*eventlogDomain.Entry, error)
}

// Counters increments the counters of the current date.
type Counters interface {
	Increment(ctx context.Context, counter dailymetricDomain.Counter) error
}

// OutboxEventRepository stores notifications for the outbox worker.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// ReplyUseCase applies a classified reply and returns the lead status it produced.
type ReplyUseCase interface {
	ApplyClassifiedReply(ctx context.Context, reply *replyDomain.Reply) (leadDomain.Status, error)
}
