package listener

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type consumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table,
	) (<-chan amqp.Delivery, error)
}

// Consumer feeds deliveries of one queue to a Handler, one message at a time.
type Consumer struct {
	channel consumeChannel
	handler *Handler
	logger  *slog.Logger
}

// NewConsumer creates a Consumer reading from channel.
func NewConsumer(channel *amqp.Channel, handler *Handler, logger *slog.Logger) *Consumer {
	return &Consumer{channel: channel, handler: handler, logger: logger}
}

// Consume blocks until ctx is done or the delivery channel closes.
func (c *Consumer) Consume(ctx context.Context, queue string) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %q: %w", queue, err)
	}

	c.logger.Info("consuming replies", slog.String("queue", queue))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("reply consumer stopped")
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel of %q closed", queue)
			}
			c.handler.Handle(ctx, delivery)
		}
	}
}
