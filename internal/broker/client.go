// Package broker holds the RabbitMQ connection shared by the reply listener and the
// notification publisher, and declares the topology they rely on.
package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client owns one AMQP connection and one channel.
type Client struct {
	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// Dial connects to url and opens a channel.
func Dial(url string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c := &Client{conn: conn, channel: ch, logger: logger}
	go c.watchClose(conn.NotifyClose(make(chan *amqp.Error, 1)))

	logger.Info("connected to rabbitmq")
	return c, nil
}

func (c *Client) watchClose(closed <-chan *amqp.Error) {
	if err, ok := <-closed; ok && err != nil {
		c.logger.Error("rabbitmq connection closed", slog.Any("error", err))
	}
}

// Channel returns the shared channel.
func (c *Client) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
