package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/outreach/internal/app"
	"github.com/allisson/outreach/internal/config"
)

// Runner is a background loop that returns when ctx is done.
type Runner func(ctx context.Context) error

// RunWorker starts the outbox worker and, when configured, the inbound reply listener
// and the metrics server. It blocks until SIGINT/SIGTERM or until one of them fails.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting worker", slog.String("version", version))
	defer closeContainer(container, logger)

	outbox, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox worker: %w", err)
	}

	consumer, err := container.ReplyConsumer()
	if err != nil {
		return fmt.Errorf("failed to initialize reply listener: %w", err)
	}

	runners := map[string]Runner{"outbox": outbox.Start}
	if consumer != nil {
		runners["reply_listener"] = func(ctx context.Context) error {
			return consumer.Consume(ctx, cfg.AMQPReplyQueue)
		}
	} else {
		logger.Warn("AMQP_URL is not set, inbound replies are accepted over HTTP only")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		runners["metrics_server"] = func(ctx context.Context) error {
			return metricsServer.Run(ctx, cfg.DBConnMaxLifetime)
		}
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runAll(ctx, logger, runners)
}

// runAll runs every runner until ctx is done. The first failure cancels the others.
// Cancellation itself is not an error.
func runAll(ctx context.Context, logger *slog.Logger, runners map[string]Runner) error {
	g, gctx := errgroup.WithContext(ctx)
	for name, run := range runners {
		g.Go(func() error {
			err := run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("worker stopped", slog.String("worker", name), slog.Any("error", err))
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	err := g.Wait()
	logger.Info("worker shutdown complete")
	return err
}
