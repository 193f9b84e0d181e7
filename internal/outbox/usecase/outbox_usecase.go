package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/outreach/internal/clock"
	"github.com/allisson/outreach/internal/database"
)

// OutboxUseCase polls the outbox and processes pending events.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	clock          clock.Clock
	logger         *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	clk clock.Clock,
	logger *slog.Logger,
) *OutboxUseCase {
	if config.Interval <= 0 {
		config.Interval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		clock:          clk,
		logger:         logger,
	}
}

// Start processes events every Interval until ctx is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox worker",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox worker")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents locks one batch of pending events and processes them in a single
// transaction. A failing event is retried on a later batch until MaxRetries.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("processing outbox events", slog.Int("count", len(events)))

		for _, event := range events {
			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				uc.logger.Error("failed to process outbox event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.Int("retries", event.Retries+1),
					slog.Any("error", err),
				)
				event.MarkFailed(err, uc.config.MaxRetries, uc.clock.Now().UTC())
			} else {
				event.MarkProcessed(uc.clock.Now().UTC())
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}
