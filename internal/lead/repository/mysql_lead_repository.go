package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// MySQLLeadRepository implements Lead persistence for MySQL. The DSN must enable
// parseTime so DATETIME columns scan into time.Time.
type MySQLLeadRepository struct {
	db *sql.DB
}

// Create inserts a new Lead.
func (m *MySQLLeadRepository) Create(ctx context.Context, lead *leadDomain.Lead) error {
	querier := database.GetTx(ctx, m.db)

	metadata, err := marshalMetadata(lead.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO leads (` + leadColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.Source,
		lead.Name,
		lead.CompanyName,
		nullString(lead.Email),
		nullString(lead.LinkedInURL),
		lead.CampaignID,
		lead.Status.String(),
		lead.SendCount,
		nullTime(lead.LastSentAt),
		nullTime(lead.NextScheduledAt),
		nullString(lead.LastMessageID),
		nullString(lead.ThreadID),
		lead.Subject,
		lead.Body,
		lead.CompanySummary,
		lead.ProductSummary,
		metadata,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create lead")
	}
	return nil
}

// Get retrieves a Lead by ID. Returns ErrLeadNotFound if absent.
func (m *MySQLLeadRepository) Get(ctx context.Context, id string) (*leadDomain.Lead, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = ?`

	lead, err := scanLead(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leadDomain.ErrLeadNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get lead")
	}
	return lead, nil
}

// Update writes every mutable field of the Lead unconditionally.
func (m *MySQLLeadRepository) Update(ctx context.Context, lead *leadDomain.Lead) error {
	querier := database.GetTx(ctx, m.db)

	metadata, err := marshalMetadata(lead.Metadata)
	if err != nil {
		return err
	}

	query := `UPDATE leads
			  SET source = ?, name = ?, company_name = ?, email = ?, linkedin_url = ?,
			      campaign_id = ?, status = ?, send_count = ?, last_sent_at = ?,
			      next_scheduled_at = ?, last_message_id = ?, thread_id = ?, subject = ?,
			      body = ?, company_summary = ?, product_summary = ?, metadata = ?,
			      updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		lead.Source,
		lead.Name,
		lead.CompanyName,
		nullString(lead.Email),
		nullString(lead.LinkedInURL),
		lead.CampaignID,
		lead.Status.String(),
		lead.SendCount,
		nullTime(lead.LastSentAt),
		nullTime(lead.NextScheduledAt),
		nullString(lead.LastMessageID),
		nullString(lead.ThreadID),
		lead.Subject,
		lead.Body,
		lead.CompanySummary,
		lead.ProductSummary,
		metadata,
		lead.UpdatedAt,
		lead.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update lead")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports changed rows, not matched rows: an identical write affects nothing.
	var exists int
	err = querier.QueryRowContext(ctx, `SELECT 1 FROM leads WHERE id = ?`, lead.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return leadDomain.ErrLeadNotFound
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to check lead existence")
	}
	return nil
}

// CompareAndSwap writes the lifecycle fields of the Lead only if the stored status and
// send count still equal the expected ones. Returns ErrConcurrentUpdate otherwise.
func (m *MySQLLeadRepository) CompareAndSwap(
	ctx context.Context,
	lead *leadDomain.Lead,
	expectedStatus leadDomain.Status,
	expectedSendCount int,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE leads
			  SET status = ?, send_count = ?, last_sent_at = ?, last_message_id = ?,
			      thread_id = ?, next_scheduled_at = ?, updated_at = ?
			  WHERE id = ? AND status = ? AND send_count = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		lead.Status.String(),
		lead.SendCount,
		nullTime(lead.LastSentAt),
		nullString(lead.LastMessageID),
		nullString(lead.ThreadID),
		nullTime(lead.NextScheduledAt),
		lead.UpdatedAt,
		lead.ID,
		expectedStatus.String(),
		expectedSendCount,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to swap lead status")
	}
	return checkAffected(result, leadDomain.ErrConcurrentUpdate)
}

// List returns leads newest first, optionally restricted to one status.
func (m *MySQLLeadRepository) List(
	ctx context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	querier := database.GetTx(ctx, m.db)

	var rows *sql.Rows
	var err error
	if status != nil {
		query := `SELECT ` + leadColumns + ` FROM leads WHERE status = ?
				  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, status.String(), limit, offset)
	} else {
		query := `SELECT ` + leadColumns + ` FROM leads
				  ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
		rows, err = querier.QueryContext(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list leads")
	}
	return collectLeads(rows)
}

// NewMySQLLeadRepository creates a new MySQL Lead repository.
func NewMySQLLeadRepository(db *sql.DB) *MySQLLeadRepository {
	return &MySQLLeadRepository{db: db}
}
