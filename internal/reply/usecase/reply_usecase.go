package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/outreach/internal/clock"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/lock"
	outboxDomain "github.com/allisson/outreach/internal/outbox/domain"
	replyDomain "github.com/allisson/outreach/internal/reply/domain"
)

type replyUseCase struct {
	txManager  database.TxManager
	leadRepo   LeadRepository
	eventLog   EventLogger
	counters   Counters
	outboxRepo OutboxEventRepository
	locker     lock.Locker
	clock      clock.Clock
	logger     *slog.Logger
}

// ApplyClassifiedReply moves the lead to the status implied by the classification,
// whatever its current status. The status change, the REPLY_RECEIVED entry, the
// counters and the outbox events commit together under the lead lock.
func (r *replyUseCase) ApplyClassifiedReply(
	ctx context.Context,
	reply *replyDomain.Reply,
) (leadDomain.Status, error) {
	if err := reply.Validate(); err != nil {
		return leadDomain.Status{}, err
	}
	category, err := leadDomain.NormalizeCategory(reply.Classification)
	if err != nil {
		return leadDomain.Status{}, r.ignore(ctx, reply, err)
	}

	now := r.clock.Now().UTC()
	applied := *reply
	if applied.ReceivedAt.IsZero() {
		applied.ReceivedAt = now
	}

	var status leadDomain.Status
	err = lock.Do(ctx, r.locker, lock.LeadKey(reply.LeadID), r.logger, func(ctx context.Context) error {
		return r.txManager.WithTx(ctx, func(ctx context.Context) error {
			lead, err := r.leadRepo.Get(ctx, applied.LeadID)
			if err != nil {
				return err
			}

			prevStatus, prevSendCount := lead.Status, lead.SendCount
			if err := lead.Apply(leadDomain.Reply(category), now); err != nil {
				return err
			}
			lead.NextScheduledAt = nil
			if err := r.leadRepo.CompareAndSwap(ctx, lead, prevStatus, prevSendCount); err != nil {
				return err
			}

			details := fmt.Sprintf("classification=%s from=%s", category, prevStatus)
			if applied.MessageID != "" {
				details += " message_id=" + applied.MessageID
			}
			_, err = r.eventLog.Append(ctx, lead.ID, eventlogDomain.EventReply, details, lead.Status.String())
			if err != nil {
				return err
			}

			for _, counter := range replyDomain.Counters(category) {
				if err := r.counters.Increment(ctx, counter); err != nil {
					return err
				}
			}

			if err := r.notify(ctx, lead, &applied, category, now); err != nil {
				return err
			}

			status = lead.Status
			return nil
		})
	})
	if err != nil {
		return leadDomain.Status{}, apperrors.Wrap(err, "failed to apply reply")
	}

	r.logger.Info("reply applied",
		slog.String("lead_id", reply.LeadID),
		slog.String("classification", string(category)),
		slog.String("status", status.String()),
	)
	return status, nil
}

// ignore records a reply whose classification cannot be applied and returns cause.
// The lead status is left unchanged.
func (r *replyUseCase) ignore(ctx context.Context, reply *replyDomain.Reply, cause error) error {
	if _, err := r.leadRepo.Get(ctx, reply.LeadID); err != nil {
		return err
	}

	details := fmt.Sprintf("classification=%q", reply.Classification)
	if reply.MessageID != "" {
		details += " message_id=" + reply.MessageID
	}
	if _, err := r.eventLog.Append(ctx, reply.LeadID, eventlogDomain.EventReplyIgnored, details, ""); err != nil {
		return err
	}

	r.logger.Warn("reply ignored",
		slog.String("lead_id", reply.LeadID),
		slog.String("classification", reply.Classification),
	)
	return cause
}

// notify writes reply.received for every reply and reply.interested for hot leads.
func (r *replyUseCase) notify(
	ctx context.Context,
	lead *leadDomain.Lead,
	reply *replyDomain.Reply,
	category leadDomain.ReplyCategory,
	now time.Time,
) error {
	payload := replyDomain.NewNotification(lead, reply, category)

	eventTypes := []string{outboxDomain.EventTypeReplyReceived}
	if category == leadDomain.CategoryInterested {
		eventTypes = append(eventTypes, outboxDomain.EventTypeReplyInterested)
	}

	for _, eventType := range eventTypes {
		event, err := outboxDomain.NewOutboxEvent(eventType, payload, now)
		if err != nil {
			return err
		}
		if err := r.outboxRepo.Create(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// NewReplyUseCase creates the reply transition.
func NewReplyUseCase(
	txManager database.TxManager,
	leadRepo LeadRepository,
	eventLog EventLogger,
	counters Counters,
	outboxRepo OutboxEventRepository,
	locker lock.Locker,
	clk clock.Clock,
	logger *slog.Logger,
) ReplyUseCase {
	return &replyUseCase{
		txManager:  txManager,
		leadRepo:   leadRepo,
		eventLog:   eventLog,
		counters:   counters,
		outboxRepo: outboxRepo,
		locker:     locker,
		clock:      clk,
		logger:     logger,
	}
}
