// Package delivery implements the outbound email capability used by the send orchestrator.
package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/outreach/internal/clock"
)

// Message is one outbound email. InReplyTo threads a follow-up under the previous
// message of the same sequence.
type Message struct {
	To        string
	ToName    string
	Subject   string
	Body      string
	InReplyTo string
}

// Provider delivers a Message and returns the provider message id. An error, including
// a context deadline, means the delivery is not confirmed and counts as failed.
type Provider interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// LogProvider is a dry-run Provider that only logs messages.
type LogProvider struct {
	clock  clock.Clock
	logger *slog.Logger
}

// NewLogProvider creates a LogProvider.
func NewLogProvider(clk clock.Clock, logger *slog.Logger) *LogProvider {
	return &LogProvider{clock: clk, logger: logger}
}

// Send logs msg and returns a synthetic message id.
func (l *LogProvider) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", providerFailure(err)
	}

	messageID := fmt.Sprintf("log_msg_%d", l.clock.Now().UnixNano())
	l.logger.Info("email delivered to log",
		slog.String("message_id", messageID),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("body_length", len(msg.Body)),
	)
	return messageID, nil
}
