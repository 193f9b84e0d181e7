// Package usecase implements the lead pipeline: ingestion, enrichment, drafting,
// manual stop and read access to leads and their audit trail.
package usecase

import (
	"context"

	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// LeadRepository defines the interface for Lead persistence operations.
type LeadRepository interface {
	Create(ctx context.Context, lead *leadDomain.Lead) error
	Get(ctx context.Context, id string) (*leadDomain.Lead, error)
	Update(ctx context.Context, lead *leadDomain.Lead) error
	CompareAndSwap(
		ctx context.Context,
		lead *leadDomain.Lead,
		expectedStatus leadDomain.Status,
		expectedSendCount int,
	) error
	List(ctx context.Context, status *leadDomain.Status, offset, limit int) ([]*leadDomain.Lead, error)
}

// EventLogger appends to and reads the lead event log.
type EventLogger interface {
	Append(
		ctx context.Context,
		leadID string,
		eventType eventlogDomain.EventType,
		details string,
		status string,
	) (*eventlogDomain.Entry, error)
	ListByLead(ctx context.Context, leadID string, offset, limit int) ([]*eventlogDomain.Entry, error)
}

// IngestInput carries a prospect as received from a lead source.
type IngestInput struct {
	Source      string
	Name        string
	CompanyName string
	Email       string
	LinkedInURL string
	CampaignID  string
	Metadata    map[string]any
}

// LeadUseCase defines the lead pipeline operations.
type LeadUseCase interface {
	Ingest(ctx context.Context, input IngestInput) (*leadDomain.Lead, error)
	// RecordEnrichment stores the research summaries and moves a new lead to enriched.
	RecordEnrichment(ctx context.Context, id, companySummary, productSummary string) (*leadDomain.Lead, error)
	// RecordDraft stores the generated copy and moves the lead to processed.
	RecordDraft(ctx context.Context, id, subject, body string) (*leadDomain.Lead, error)
	// Stop takes the lead out of the sequence for good.
	Stop(ctx context.Context, id string) (*leadDomain.Lead, error)
	Get(ctx context.Context, id string) (*leadDomain.Lead, error)
	List(ctx context.Context, status *leadDomain.Status, offset, limit int) ([]*leadDomain.Lead, error)
	// Logs returns the audit trail of an existing lead, newest first.
	Logs(ctx context.Context, id string, offset, limit int) ([]*eventlogDomain.Entry, error)
}
