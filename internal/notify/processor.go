package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "github.com/allisson/outreach/internal/errors"
	outboxDomain "github.com/allisson/outreach/internal/outbox/domain"
)

// Processor turns outbox events into published notifications. The event type is
// the routing key.
type Processor struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(publisher Publisher, logger *slog.Logger) *Processor {
	return &Processor{publisher: publisher, logger: logger}
}

// Process publishes event. Events with a malformed payload fail without publishing.
func (p *Processor) Process(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	if !json.Valid([]byte(event.Payload)) {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "outbox event %s has a malformed payload", event.ID)
	}

	if event.EventType == outboxDomain.EventTypeReplyInterested {
		p.logger.Info("hot lead", slog.String("event_id", event.ID.String()))
	}

	return p.publisher.Publish(ctx, Message{
		ID:         event.ID.String(),
		RoutingKey: event.EventType,
		Body:       []byte(event.Payload),
	})
}
