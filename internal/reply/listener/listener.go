// Package listener consumes classified inbound replies from RabbitMQ and applies them
// to leads exactly once per inbound message id.
package listener

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	replyDomain "github.com/allisson/outreach/internal/reply/domain"
)

// ReplyApplier is the reply transition.
type ReplyApplier interface {
	ApplyClassifiedReply(ctx context.Context, reply *replyDomain.Reply) (leadDomain.Status, error)
}

// Message is the wire format of a classified reply.
type Message struct {
	MessageID      string    `json:"message_id"`
	LeadID         string    `json:"lead_id"`
	Content        string    `json:"content"`
	Classification string    `json:"classification"`
	ReceivedAt     time.Time `json:"received_at"`
}

// Handler applies deliveries. Successful and permanently invalid messages are acked;
// anything else is rejected without requeue and lands in the dead letter queue.
type Handler struct {
	replies ReplyApplier
	dedup   Deduplicator
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler creates a Handler. timeout bounds each ApplyClassifiedReply call.
func NewHandler(replies ReplyApplier, dedup Deduplicator, timeout time.Duration, logger *slog.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{replies: replies, dedup: dedup, timeout: timeout, logger: logger}
}

// Handle processes one delivery and acknowledges it.
func (h *Handler) Handle(ctx context.Context, delivery amqp.Delivery) {
	if err := h.handle(ctx, delivery); err != nil {
		if err := delivery.Nack(false, false); err != nil {
			h.logger.Error("failed to nack reply", slog.Any("error", err))
		}
		return
	}
	if err := delivery.Ack(false); err != nil {
		h.logger.Error("failed to ack reply", slog.Any("error", err))
	}
}

func (h *Handler) handle(ctx context.Context, delivery amqp.Delivery) error {
	var msg Message
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		h.logger.Warn("dropping malformed reply", slog.String("delivery_id", delivery.MessageId),
			slog.Any("error", err))
		return nil
	}

	messageID := strings.TrimSpace(msg.MessageID)
	if messageID == "" {
		messageID = delivery.MessageId
	}
	attrs := []any{slog.String("message_id", messageID), slog.String("lead_id", msg.LeadID)}

	if messageID != "" {
		claimed, err := h.dedup.Claim(ctx, messageID)
		if err != nil {
			h.logger.Error("failed to claim reply", append(attrs, slog.Any("error", err))...)
			return err
		}
		if !claimed {
			h.logger.Info("skipping duplicate reply", attrs...)
			return nil
		}
	}

	applyCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	_, err := h.replies.ApplyClassifiedReply(applyCtx, &replyDomain.Reply{
		MessageID:      messageID,
		LeadID:         msg.LeadID,
		ReceivedAt:     msg.ReceivedAt,
		Content:        msg.Content,
		Classification: msg.Classification,
	})
	switch {
	case err == nil:
		return nil
	case apperrors.Is(err, apperrors.ErrNotFound), apperrors.Is(err, apperrors.ErrInvalidInput):
		h.logger.Warn("dropping unprocessable reply", append(attrs, slog.Any("error", err))...)
		return nil
	}

	h.logger.Error("failed to apply reply", append(attrs, slog.Any("error", err))...)
	if messageID != "" {
		if err := h.dedup.Forget(context.WithoutCancel(ctx), messageID); err != nil {
			h.logger.Warn("failed to forget reply claim", append(attrs, slog.Any("error", err))...)
		}
	}
	return err
}
