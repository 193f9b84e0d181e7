// Package usecase runs the outbox worker: it drains pending outbox events and hands
// them to an EventProcessor, retrying failures up to a limit.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/outreach/internal/outbox/domain"
)

// Config holds outbox worker configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event persistence.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers one outbox event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the outbox worker.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}
