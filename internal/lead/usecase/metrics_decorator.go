package usecase

import (
	"context"
	"time"

	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	"github.com/allisson/outreach/internal/metrics"
)

// leadUseCaseWithMetrics decorates LeadUseCase with metrics instrumentation.
type leadUseCaseWithMetrics struct {
	next    LeadUseCase
	metrics metrics.BusinessMetrics
}

// NewLeadUseCaseWithMetrics wraps a LeadUseCase with metrics recording.
func NewLeadUseCaseWithMetrics(useCase LeadUseCase, m metrics.BusinessMetrics) LeadUseCase {
	return &leadUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (l *leadUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	l.metrics.ObserveOperation(ctx, "lead", operation, time.Since(start), err)
}

// recordTransition records a lifecycle operation and the status it moved the lead to.
func (l *leadUseCaseWithMetrics) recordTransition(
	ctx context.Context,
	operation string,
	start time.Time,
	lead *leadDomain.Lead,
	err error,
) {
	l.record(ctx, operation, start, err)
	if err == nil {
		l.metrics.RecordLeadStatus(ctx, lead.Status.String())
	}
}

func (l *leadUseCaseWithMetrics) Ingest(ctx context.Context, input IngestInput) (*leadDomain.Lead, error) {
	start := time.Now()
	lead, err := l.next.Ingest(ctx, input)
	l.recordTransition(ctx, "lead_ingest", start, lead, err)
	return lead, err
}

func (l *leadUseCaseWithMetrics) RecordEnrichment(
	ctx context.Context,
	id, companySummary, productSummary string,
) (*leadDomain.Lead, error) {
	start := time.Now()
	lead, err := l.next.RecordEnrichment(ctx, id, companySummary, productSummary)
	l.recordTransition(ctx, "lead_enrich", start, lead, err)
	return lead, err
}

func (l *leadUseCaseWithMetrics) RecordDraft(ctx context.Context, id, subject, body string) (*leadDomain.Lead, error) {
	start := time.Now()
	lead, err := l.next.RecordDraft(ctx, id, subject, body)
	l.recordTransition(ctx, "lead_draft", start, lead, err)
	return lead, err
}

func (l *leadUseCaseWithMetrics) Stop(ctx context.Context, id string) (*leadDomain.Lead, error) {
	start := time.Now()
	lead, err := l.next.Stop(ctx, id)
	l.recordTransition(ctx, "lead_stop", start, lead, err)
	return lead, err
}

func (l *leadUseCaseWithMetrics) Get(ctx context.Context, id string) (*leadDomain.Lead, error) {
	start := time.Now()
	lead, err := l.next.Get(ctx, id)
	l.record(ctx, "lead_get", start, err)
	return lead, err
}

func (l *leadUseCaseWithMetrics) List(
	ctx context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	start := time.Now()
	leads, err := l.next.List(ctx, status, offset, limit)
	l.record(ctx, "lead_list", start, err)
	return leads, err
}

func (l *leadUseCaseWithMetrics) Logs(
	ctx context.Context,
	id string,
	offset, limit int,
) ([]*eventlogDomain.Entry, error) {
	start := time.Now()
	entries, err := l.next.Logs(ctx, id, offset, limit)
	l.record(ctx, "lead_logs", start, err)
	return entries, err
}
