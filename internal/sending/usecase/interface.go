// Package usecase implements the send orchestrator: it validates a lead against the
// lifecycle, consults admission control, delivers the email and commits the result.
package usecase

import (
	"context"
	"time"

	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	riskDomain "github.com/allisson/outreach/internal/risk/domain"
)

// LeadRepository defines the lead persistence used while sending.
type LeadRepository interface {
	Get(ctx context.Context, id string) (*leadDomain.Lead, error)
	Update(ctx context.Context, lead *leadDomain.Lead) error
	CompareAndSwap(
		ctx context.Context,
		lead *leadDomain.Lead,
		expectedStatus leadDomain.Status,
		expectedSendCount int,
	) error
}

// EventLogger appends to the lead event log.
type EventLogger interface {
	Append(
		ctx context.Context,
		leadID string,
		eventType eventlogDomain.EventType,
		details string,
		status string,
	) (*eventlogDomain.Entry, error)
}

// RiskController is the admission control consulted before every delivery.
type RiskController interface {
	CanSend(ctx context.Context, lead *leadDomain.Lead) (riskDomain.Decision, error)
	RecordSendSuccess(ctx context.Context) error
	Release(ctx context.Context, slot string) error
}

// Overrides replaces draft fields before sending. Nil fields keep the stored draft.
type Overrides struct {
	Subject *string
	Body    *string
}

// ApproveInput requests delivery of the next sequence step of a lead.
type ApproveInput struct {
	LeadID    string
	Overrides Overrides
	// Step is the sequence step the caller expects to send. When nil it is the send
	// count read before the lead lock is taken, so two callers racing on the same lead
	// resolve to the same step and only one of them sends.
	Step *int
}

// EmailInteraction is the result of a successful send.
type EmailInteraction struct {
	LeadID    string
	Step      int
	SentAt    time.Time
	MessageID string
	ThreadID  string
	Subject   string
	Body      string
	Status    leadDomain.Status
}

// BatchFailure reports why one lead of a batch was not sent.
type BatchFailure struct {
	LeadID string
	Reason string
	Err    error
}

// BatchResult partitions a batch by outcome, each side in request order.
type BatchResult struct {
	Succeeded []*EmailInteraction
	Failed    []*BatchFailure
}

// SendUseCase defines the send orchestration operations.
type SendUseCase interface {
	// ApproveAndSend returns ErrNotFound, ErrInvalidState, ErrAdmissionBlocked or
	// ErrProviderFailure for recoverable outcomes, each recorded in the event log.
	// Any other error is a persistence failure.
	ApproveAndSend(ctx context.Context, input ApproveInput) (*EmailInteraction, error)
	// BatchApprove sends every lead independently; one failure never blocks another.
	BatchApprove(ctx context.Context, leadIDs []string, overrides map[string]Overrides) (*BatchResult, error)
}
