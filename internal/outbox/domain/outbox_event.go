// Package domain defines outbox events: notifications written in the same transaction
// as the lead change that caused them and published later by the worker.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/outreach/internal/errors"
)

// OutboxEventStatus represents the delivery state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types written by the reply transition.
const (
	EventTypeReplyReceived   = "reply.received"
	EventTypeReplyInterested = "reply.interested"
)

// OutboxEvent represents an event in the transactional outbox.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with a UUIDv7 id and payload encoded as JSON.
func NewOutboxEvent(eventType string, payload any, now time.Time) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode outbox payload")
	}
	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkProcessed records a successful publish.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a failed publish. The event stays pending until maxRetries
// attempts have failed.
func (e *OutboxEvent) MarkFailed(err error, maxRetries int, now time.Time) {
	e.Retries++
	msg := err.Error()
	e.LastError = &msg
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
	e.UpdatedAt = now
}
