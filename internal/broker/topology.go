package broker

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeadLetterQueue names the queue receiving rejected messages of queue.
func DeadLetterQueue(queue string) string {
	return queue + ".dead"
}

// DeclareExchange declares a durable topic exchange.
func (c *Client) DeclareExchange(name string) error {
	err := c.Channel().ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %q: %w", name, err)
	}
	return nil
}

// DeclareQueue declares a durable queue whose rejected messages are routed through
// the default exchange to its dead letter queue.
func (c *Client) DeclareQueue(name string) error {
	ch := c.Channel()

	dead := DeadLetterQueue(name)
	if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", dead, err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dead,
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", name, err)
	}
	return nil
}

