package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// PostgreSQLLeadRepository implements Lead persistence for PostgreSQL.
type PostgreSQLLeadRepository struct {
	db *sql.DB
}

// Create inserts a new Lead.
func (p *PostgreSQLLeadRepository) Create(ctx context.Context, lead *leadDomain.Lead) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := marshalMetadata(lead.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO leads (` + leadColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

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
func (p *PostgreSQLLeadRepository) Get(ctx context.Context, id string) (*leadDomain.Lead, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

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
func (p *PostgreSQLLeadRepository) Update(ctx context.Context, lead *leadDomain.Lead) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := marshalMetadata(lead.Metadata)
	if err != nil {
		return err
	}

	query := `UPDATE leads
			  SET source = $1, name = $2, company_name = $3, email = $4, linkedin_url = $5,
			      campaign_id = $6, status = $7, send_count = $8, last_sent_at = $9,
			      next_scheduled_at = $10, last_message_id = $11, thread_id = $12, subject = $13,
			      body = $14, company_summary = $15, product_summary = $16, metadata = $17,
			      updated_at = $18
			  WHERE id = $19`

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
	return checkAffected(result, leadDomain.ErrLeadNotFound)
}

// CompareAndSwap writes the lifecycle fields of the Lead only if the stored status and
// send count still equal the expected ones. Returns ErrConcurrentUpdate otherwise.
func (p *PostgreSQLLeadRepository) CompareAndSwap(
	ctx context.Context,
	lead *leadDomain.Lead,
	expectedStatus leadDomain.Status,
	expectedSendCount int,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE leads
			  SET status = $1, send_count = $2, last_sent_at = $3, last_message_id = $4,
			      thread_id = $5, next_scheduled_at = $6, updated_at = $7
			  WHERE id = $8 AND status = $9 AND send_count = $10`

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
func (p *PostgreSQLLeadRepository) List(
	ctx context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	querier := database.GetTx(ctx, p.db)

	var rows *sql.Rows
	var err error
	if status != nil {
		query := `SELECT ` + leadColumns + ` FROM leads WHERE status = $1
				  ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
		rows, err = querier.QueryContext(ctx, query, status.String(), limit, offset)
	} else {
		query := `SELECT ` + leadColumns + ` FROM leads
				  ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
		rows, err = querier.QueryContext(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list leads")
	}
	return collectLeads(rows)
}

// NewPostgreSQLLeadRepository creates a new PostgreSQL Lead repository.
func NewPostgreSQLLeadRepository(db *sql.DB) *PostgreSQLLeadRepository {
	return &PostgreSQLLeadRepository{db: db}
}

func collectLeads(rows *sql.Rows) ([]*leadDomain.Lead, error) {
	defer func() {
		_ = rows.Close()
	}()

	leads := make([]*leadDomain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan lead")
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate leads")
	}
	return leads, nil
}

func checkAffected(result sql.Result, notAffected error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notAffected
	}
	return nil
}
