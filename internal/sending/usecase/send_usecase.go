package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/outreach/internal/clock"
	"github.com/allisson/outreach/internal/database"
	"github.com/allisson/outreach/internal/delivery"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/lock"
	riskDomain "github.com/allisson/outreach/internal/risk/domain"
)

// Config holds send orchestration settings.
type Config struct {
	SendTimeout      time.Duration
	BatchConcurrency int
}

type sendUseCase struct {
	config    Config
	txManager database.TxManager
	leadRepo  LeadRepository
	eventLog  EventLogger
	risk      RiskController
	provider  delivery.Provider
	locker    lock.Locker
	clock     clock.Clock
	logger    *slog.Logger
}

func (s *sendUseCase) ApproveAndSend(ctx context.Context, input ApproveInput) (*EmailInteraction, error) {
	step, err := s.expectedStep(ctx, input)
	if err != nil {
		return nil, err
	}

	var interaction *EmailInteraction
	err = lock.Do(ctx, s.locker, lock.LeadKey(input.LeadID), s.logger, func(ctx context.Context) error {
		var err error
		interaction, err = s.send(ctx, input, step)
		return err
	})
	if err != nil {
		s.logResult(input.LeadID, step, err)
		return nil, err
	}

	s.logger.Info("email sent",
		slog.String("lead_id", interaction.LeadID),
		slog.Int("step", interaction.Step),
		slog.String("message_id", interaction.MessageID),
	)
	return interaction, nil
}

func (s *sendUseCase) expectedStep(ctx context.Context, input ApproveInput) (int, error) {
	if input.Step != nil {
		if *input.Step < 0 {
			return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "step must not be negative")
		}
		return *input.Step, nil
	}

	lead, err := s.leadRepo.Get(ctx, input.LeadID)
	if err != nil {
		return 0, err
	}
	return lead.NextStep(), nil
}

// send runs while the lead lock is held.
func (s *sendUseCase) send(ctx context.Context, input ApproveInput, step int) (*EmailInteraction, error) {
	lead, err := s.leadRepo.Get(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}

	if err := leadDomain.CheckSendable(lead.Status, lead.SendCount, step); err != nil {
		return nil, s.reject(ctx, lead, eventlogDomain.EventSendRejected, "", err)
	}
	if lead.Email == "" {
		return nil, s.reject(ctx, lead, eventlogDomain.EventSendRejected, "", leadDomain.ErrNoRecipient)
	}

	if err := s.saveOverrides(ctx, lead, input.Overrides); err != nil {
		return nil, err
	}

	decision, err := s.risk.CanSend(ctx, lead)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, s.block(ctx, lead, decision)
	}
	// the slot is held until the outcome is persisted so the next sender reads the
	// committed daily count
	defer s.releaseSlot(ctx, decision.Slot)

	if _, err := s.eventLog.Append(ctx, lead.ID, eventlogDomain.EventSendAttempt,
		fmt.Sprintf("step=%d to=%s", step, lead.Email), ""); err != nil {
		return nil, err
	}

	messageID, err := s.deliver(ctx, lead)
	if err != nil {
		return nil, s.reject(ctx, lead, eventlogDomain.EventSendErr, "", err)
	}

	return s.commit(ctx, lead, step, messageID)
}

func (s *sendUseCase) saveOverrides(ctx context.Context, lead *leadDomain.Lead, overrides Overrides) error {
	if !lead.ApplyDraft(overrides.Subject, overrides.Body) {
		return nil
	}
	lead.UpdatedAt = s.clock.Now().UTC()

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.leadRepo.Update(ctx, lead); err != nil {
			return err
		}
		_, err := s.eventLog.Append(ctx, lead.ID, eventlogDomain.EventDraftUpdated,
			fmt.Sprintf("subject=%q", lead.Subject), "")
		return err
	})
}

func (s *sendUseCase) deliver(ctx context.Context, lead *leadDomain.Lead) (string, error) {
	sendCtx := ctx
	if s.config.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.config.SendTimeout)
		defer cancel()
	}

	msg := delivery.Message{
		To:      lead.Email,
		ToName:  lead.Name,
		Subject: lead.Subject,
		Body:    lead.Body,
	}
	if lead.SendCount > 0 {
		msg.InReplyTo = lead.LastMessageID
	}

	messageID, err := s.provider.Send(sendCtx, msg)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrProviderFailure) {
			err = fmt.Errorf("%w: %v", apperrors.ErrProviderFailure, err)
		}
		return "", err
	}
	return messageID, nil
}

// commit persists a confirmed delivery. The lead update is guarded by the status and
// send count read under the lock, so a concurrent writer that bypassed the lock makes
// the commit fail rather than count the step twice.
func (s *sendUseCase) commit(
	ctx context.Context,
	lead *leadDomain.Lead,
	step int,
	messageID string,
) (*EmailInteraction, error) {
	prevStatus, prevSendCount := lead.Status, lead.SendCount
	sentAt := s.clock.Now().UTC()

	if err := lead.MarkSent(step, messageID, sentAt); err != nil {
		return nil, err
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.leadRepo.CompareAndSwap(ctx, lead, prevStatus, prevSendCount); err != nil {
			return err
		}
		if _, err := s.eventLog.Append(ctx, lead.ID, eventlogDomain.EventSendOK,
			fmt.Sprintf("message_id=%s step=%d", messageID, step), lead.Status.String()); err != nil {
			return err
		}
		return s.risk.RecordSendSuccess(ctx)
	})
	if err != nil {
		s.logger.Error("delivered email not committed",
			slog.String("lead_id", lead.ID),
			slog.String("message_id", messageID),
			slog.Any("error", err),
		)
		return nil, apperrors.Wrap(err, "failed to commit send")
	}

	return &EmailInteraction{
		LeadID:    lead.ID,
		Step:      step,
		SentAt:    sentAt,
		MessageID: messageID,
		ThreadID:  lead.ThreadID,
		Subject:   lead.Subject,
		Body:      lead.Body,
		Status:    lead.Status,
	}, nil
}

// block records an admission refusal and applies the forced transition it carries.
func (s *sendUseCase) block(ctx context.Context, lead *leadDomain.Lead, decision riskDomain.Decision) error {
	blocked := apperrors.Wrap(apperrors.ErrAdmissionBlocked, decision.String())

	if decision.ForcedStatus == nil {
		return s.reject(ctx, lead, eventlogDomain.EventSendBlocked, "", blocked)
	}

	forced := *decision.ForcedStatus
	if forced.Kind != leadDomain.KindStopped {
		return fmt.Errorf("%w: forced %s", leadDomain.ErrInvalidTransition, forced)
	}

	prevStatus := lead.Status
	if err := lead.Apply(leadDomain.Stop(forced.Reason), s.clock.Now().UTC()); err != nil {
		return err
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.leadRepo.CompareAndSwap(ctx, lead, prevStatus, lead.SendCount); err != nil {
			return err
		}
		_, err := s.eventLog.Append(ctx, lead.ID, eventlogDomain.EventSendBlocked, decision.String(), lead.Status.String())
		return err
	})
	if err != nil {
		return err
	}
	return blocked
}

// reject records a refused or failed attempt and returns cause. A logging failure
// takes precedence since the audit trail would otherwise miss the attempt.
func (s *sendUseCase) reject(
	ctx context.Context,
	lead *leadDomain.Lead,
	eventType eventlogDomain.EventType,
	status string,
	cause error,
) error {
	if _, err := s.eventLog.Append(ctx, lead.ID, eventType, cause.Error(), status); err != nil {
		return err
	}
	return cause
}

func (s *sendUseCase) releaseSlot(ctx context.Context, slot string) {
	if err := s.risk.Release(context.WithoutCancel(ctx), slot); err != nil {
		s.logger.Warn("failed to release send slot", slog.Any("error", err))
	}
}

func (s *sendUseCase) logResult(leadID string, step int, err error) {
	attrs := []any{slog.String("lead_id", leadID), slog.Int("step", step), slog.Any("error", err)}
	if apperrors.IsRecoverable(err) || apperrors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("send rejected", attrs...)
		return
	}
	s.logger.Error("send failed", attrs...)
}

func (s *sendUseCase) BatchApprove(
	ctx context.Context,
	leadIDs []string,
	overrides map[string]Overrides,
) (*BatchResult, error) {
	if len(leadIDs) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no leads to approve")
	}

	interactions := make([]*EmailInteraction, len(leadIDs))
	failures := make([]*BatchFailure, len(leadIDs))

	var g errgroup.Group
	g.SetLimit(max(s.config.BatchConcurrency, 1))

	for i, leadID := range leadIDs {
		g.Go(func() error {
			interaction, err := s.ApproveAndSend(ctx, ApproveInput{LeadID: leadID, Overrides: overrides[leadID]})
			if err != nil {
				failures[i] = &BatchFailure{LeadID: leadID, Reason: err.Error(), Err: err}
				return nil
			}
			interactions[i] = interaction
			return nil
		})
	}
	_ = g.Wait()

	result := &BatchResult{
		Succeeded: make([]*EmailInteraction, 0),
		Failed:    make([]*BatchFailure, 0),
	}
	for i := range leadIDs {
		if interactions[i] != nil {
			result.Succeeded = append(result.Succeeded, interactions[i])
		}
		if failures[i] != nil {
			result.Failed = append(result.Failed, failures[i])
		}
	}
	return result, nil
}

// NewSendUseCase creates a new SendUseCase with the provided dependencies.
func NewSendUseCase(
	config Config,
	txManager database.TxManager,
	leadRepo LeadRepository,
	eventLog EventLogger,
	risk RiskController,
	provider delivery.Provider,
	locker lock.Locker,
	clk clock.Clock,
	logger *slog.Logger,
) SendUseCase {
	return &sendUseCase{
		config:    config,
		txManager: txManager,
		leadRepo:  leadRepo,
		eventLog:  eventLog,
		risk:      risk,
		provider:  provider,
		locker:    locker,
		clock:     clk,
		logger:    logger,
	}
}
