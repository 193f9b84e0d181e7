// Package notify publishes outbox events: lead notifications such as hot-lead alerts.
package notify

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/allisson/outreach/internal/broker"
	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
)

// Message is one notification ready to be published.
type Message struct {
	ID         string
	RoutingKey string
	Body       []byte
}

// Publisher delivers notifications to subscribers.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type amqpChannel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// AMQPPublisher publishes persistent JSON messages to a topic exchange.
type AMQPPublisher struct {
	channel  func() amqpChannel
	exchange string
	timeout  time.Duration
	clock    clock.Clock
}

// NewAMQPPublisher creates a publisher on client's channel.
func NewAMQPPublisher(client *broker.Client, exchange string, clk clock.Clock) *AMQPPublisher {
	return &AMQPPublisher{
		channel:  func() amqpChannel { return client.Channel() },
		exchange: exchange,
		timeout:  5 * time.Second,
		clock:    clk,
	}
}

// Publish sends msg with its routing key. Without a deadline on ctx the publish is
// bounded by a default timeout.
func (p *AMQPPublisher) Publish(ctx context.Context, msg Message) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.channel().PublishWithContext(ctx, p.exchange, msg.RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    p.clock.Now().UTC(),
		Body:         msg.Body,
	})
	if err != nil {
		return apperrors.Wrapf(err, "failed to publish %s to %s", msg.RoutingKey, p.exchange)
	}
	return nil
}

// LogPublisher writes notifications to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, msg Message) error {
	p.logger.Info("notification",
		slog.String("id", msg.ID),
		slog.String("routing_key", msg.RoutingKey),
		slog.String("body", string(msg.Body)),
	)
	return nil
}
