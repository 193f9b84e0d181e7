package app

import (
	"fmt"
	"sync"

	"github.com/allisson/outreach/internal/notify"
	outboxUseCase "github.com/allisson/outreach/internal/outbox/usecase"
	"github.com/allisson/outreach/internal/reply/listener"
	replyUseCase "github.com/allisson/outreach/internal/reply/usecase"
)

type replyComponents struct {
	replyUseCase  replyUseCase.ReplyUseCase
	deduplicator  listener.Deduplicator
	replyConsumer *listener.Consumer
	publisher     notify.Publisher
	outboxUseCase outboxUseCase.UseCase

	replyUseCaseInit  sync.Once
	deduplicatorInit  sync.Once
	replyConsumerInit sync.Once
	publisherInit     sync.Once
	outboxUseCaseInit sync.Once
}

// ReplyUseCase returns the reply transition, wrapped with metrics.
func (c *Container) ReplyUseCase() (replyUseCase.ReplyUseCase, error) {
	var err error
	c.replyUseCaseInit.Do(func() {
		c.replyUseCase, err = c.initReplyUseCase()
		if err != nil {
			c.setInitError("replyUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.replyUseCase, c.initError("replyUseCase")
}

// Deduplicator returns the processed-reply registry used by the listener.
func (c *Container) Deduplicator() (listener.Deduplicator, error) {
	var err error
	c.deduplicatorInit.Do(func() {
		c.deduplicator, err = c.initDeduplicator()
		if err != nil {
			c.setInitError("deduplicator", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.deduplicator, c.initError("deduplicator")
}

// ReplyConsumer returns the AMQP reply listener, or nil when no broker is configured.
func (c *Container) ReplyConsumer() (*listener.Consumer, error) {
	var err error
	c.replyConsumerInit.Do(func() {
		c.replyConsumer, err = c.initReplyConsumer()
		if err != nil {
			c.setInitError("replyConsumer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.replyConsumer, c.initError("replyConsumer")
}

// Publisher returns the notification publisher: AMQP when a broker is configured,
// the log otherwise.
func (c *Container) Publisher() (notify.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		c.publisher, err = c.initPublisher()
		if err != nil {
			c.setInitError("publisher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.publisher, c.initError("publisher")
}

// OutboxUseCase returns the outbox worker publishing lead notifications.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.setInitError("outboxUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return c.outboxUseCase, c.initError("outboxUseCase")
}

func (c *Container) initReplyUseCase() (replyUseCase.ReplyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for reply use case: %w", err)
	}

	leadRepo, err := c.LeadRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get lead repository for reply use case: %w", err)
	}

	eventLog, err := c.EventLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event log for reply use case: %w", err)
	}

	counters, err := c.DailyMetricUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get daily metrics for reply use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for reply use case: %w", err)
	}

	locker, err := c.Locker()
	if err != nil {
		return nil, err
	}

	baseUseCase := replyUseCase.NewReplyUseCase(
		txManager, leadRepo, eventLog, counters, outboxRepo, locker, c.clock, c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for reply use case: %w", err)
	}
	return replyUseCase.NewReplyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
}

func (c *Container) initDeduplicator() (listener.Deduplicator, error) {
	client, err := c.Redis()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis for deduplicator: %w", err)
	}
	if client == nil {
		return listener.NewMemoryDeduplicator(c.clock, c.config.ReplyDedupTTL), nil
	}
	return listener.NewRedisDeduplicator(client, keyPrefix+"reply:", c.config.ReplyDedupTTL), nil
}

func (c *Container) initReplyConsumer() (*listener.Consumer, error) {
	client, err := c.Broker()
	if err != nil {
		return nil, fmt.Errorf("failed to get broker for reply consumer: %w", err)
	}
	if client == nil {
		return nil, nil
	}

	replies, err := c.ReplyUseCase()
	if err != nil {
		return nil, err
	}

	dedup, err := c.Deduplicator()
	if err != nil {
		return nil, err
	}

	handler := listener.NewHandler(replies, dedup, c.config.SendTimeout, c.Logger())
	return listener.NewConsumer(client.Channel(), handler, c.Logger()), nil
}

func (c *Container) initPublisher() (notify.Publisher, error) {
	client, err := c.Broker()
	if err != nil {
		return nil, fmt.Errorf("failed to get broker for publisher: %w", err)
	}
	if client == nil {
		return notify.NewLogPublisher(c.Logger()), nil
	}
	return notify.NewAMQPPublisher(client, c.config.AMQPNotifyExchange, c.clock), nil
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, err
	}

	useCaseConfig := outboxUseCase.Config{
		Interval:   c.config.WorkerInterval,
		BatchSize:  c.config.WorkerBatchSize,
		MaxRetries: c.config.WorkerMaxRetries,
	}

	processor := notify.NewProcessor(publisher, c.Logger())
	return outboxUseCase.NewOutboxUseCase(useCaseConfig, txManager, outboxRepo, processor, c.clock, c.Logger()), nil
}
