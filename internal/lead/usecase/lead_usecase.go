package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/outreach/internal/clock"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/lock"
)

type leadUseCase struct {
	txManager database.TxManager
	leadRepo  LeadRepository
	eventLog  EventLogger
	locker    lock.Locker
	clock     clock.Clock
	logger    *slog.Logger
}

// Ingest creates a new lead with a UUIDv7 id. Leads without a campaign join the default one.
func (l *leadUseCase) Ingest(ctx context.Context, input IngestInput) (*leadDomain.Lead, error) {
	name := strings.TrimSpace(input.Name)
	company := strings.TrimSpace(input.CompanyName)
	if name == "" || company == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name and company name are required")
	}

	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		campaignID = leadDomain.DefaultCampaignID
	}

	now := l.clock.Now().UTC()
	lead := &leadDomain.Lead{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Source:      input.Source,
		Name:        name,
		CompanyName: company,
		Email:       strings.TrimSpace(input.Email),
		LinkedInURL: strings.TrimSpace(input.LinkedInURL),
		CampaignID:  campaignID,
		Status:      leadDomain.StatusNew(),
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := l.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := l.leadRepo.Create(ctx, lead); err != nil {
			return err
		}
		_, err := l.eventLog.Append(ctx, lead.ID, eventlogDomain.EventIngest,
			fmt.Sprintf("source=%s campaign=%s", lead.Source, lead.CampaignID), lead.Status.String())
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to ingest lead")
	}

	l.logger.Info("lead ingested", slog.String("lead_id", lead.ID), slog.String("source", lead.Source))
	return lead, nil
}

func (l *leadUseCase) RecordEnrichment(
	ctx context.Context,
	id, companySummary, productSummary string,
) (*leadDomain.Lead, error) {
	return l.mutate(ctx, id, func(lead *leadDomain.Lead) (eventlogDomain.EventType, string, error) {
		if err := lead.Apply(leadDomain.Enrich(), l.clock.Now().UTC()); err != nil {
			return "", "", err
		}
		lead.CompanySummary = companySummary
		lead.ProductSummary = productSummary
		return eventlogDomain.EventEnrichOK, "enrichment recorded", nil
	})
}

func (l *leadUseCase) RecordDraft(ctx context.Context, id, subject, body string) (*leadDomain.Lead, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "subject and body are required")
	}

	return l.mutate(ctx, id, func(lead *leadDomain.Lead) (eventlogDomain.EventType, string, error) {
		if err := lead.Apply(leadDomain.Draft(), l.clock.Now().UTC()); err != nil {
			return "", "", err
		}
		lead.Subject = subject
		lead.Body = body
		return eventlogDomain.EventDraftOK, fmt.Sprintf("subject=%q", subject), nil
	})
}

func (l *leadUseCase) Stop(ctx context.Context, id string) (*leadDomain.Lead, error) {
	return l.mutate(ctx, id, func(lead *leadDomain.Lead) (eventlogDomain.EventType, string, error) {
		if err := lead.Apply(leadDomain.Stop(leadDomain.StopManual), l.clock.Now().UTC()); err != nil {
			return "", "", err
		}
		return eventlogDomain.EventStopped, "stopped manually", nil
	})
}

func (l *leadUseCase) Get(ctx context.Context, id string) (*leadDomain.Lead, error) {
	return l.leadRepo.Get(ctx, id)
}

func (l *leadUseCase) List(
	ctx context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	leads, err := l.leadRepo.List(ctx, status, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list leads")
	}
	return leads, nil
}

func (l *leadUseCase) Logs(ctx context.Context, id string, offset, limit int) ([]*eventlogDomain.Entry, error) {
	if _, err := l.leadRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	return l.eventLog.ListByLead(ctx, id, offset, limit)
}

// mutate loads the lead under its lock, applies change and persists the lead together
// with the resulting log entry. Nothing is written when change fails.
func (l *leadUseCase) mutate(
	ctx context.Context,
	id string,
	change func(lead *leadDomain.Lead) (eventlogDomain.EventType, string, error),
) (*leadDomain.Lead, error) {
	var lead *leadDomain.Lead

	err := lock.Do(ctx, l.locker, lock.LeadKey(id), l.logger, func(ctx context.Context) error {
		return l.txManager.WithTx(ctx, func(ctx context.Context) error {
			var err error
			lead, err = l.leadRepo.Get(ctx, id)
			if err != nil {
				return err
			}

			eventType, details, err := change(lead)
			if err != nil {
				return err
			}

			if err := l.leadRepo.Update(ctx, lead); err != nil {
				return err
			}
			_, err = l.eventLog.Append(ctx, lead.ID, eventType, details, lead.Status.String())
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("lead updated", slog.String("lead_id", lead.ID), slog.String("status", lead.Status.String()))
	return lead, nil
}

// NewLeadUseCase creates a new LeadUseCase with the provided dependencies.
func NewLeadUseCase(
	txManager database.TxManager,
	leadRepo LeadRepository,
	eventLog EventLogger,
	locker lock.Locker,
	clk clock.Clock,
	logger *slog.Logger,
) LeadUseCase {
	return &leadUseCase{
		txManager: txManager,
		leadRepo:  leadRepo,
		eventLog:  eventLog,
		locker:    locker,
		clock:     clk,
		logger:    logger,
	}
}
