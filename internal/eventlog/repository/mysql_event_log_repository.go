package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
)

// MySQLEventLogRepository implements event log persistence for MySQL.
type MySQLEventLogRepository struct {
	db *sql.DB
}

// Append inserts the entry and sets its storage-assigned ID.
func (m *MySQLEventLogRepository) Append(ctx context.Context, entry *eventlogDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO lead_events (lead_id, event_type, details, status, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		entry.LeadID,
		string(entry.EventType),
		entry.Details,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to append lead event")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read lead event id")
	}
	entry.ID = id
	return nil
}

// ListByLead returns the entries of one lead, newest first by insertion order.
func (m *MySQLEventLogRepository) ListByLead(
	ctx context.Context,
	leadID string,
	offset, limit int,
) ([]*eventlogDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, lead_id, event_type, details, status, created_at
			  FROM lead_events
			  WHERE lead_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, leadID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list lead events")
	}
	return collectEntries(rows)
}

// NewMySQLEventLogRepository creates a new MySQL event log repository.
func NewMySQLEventLogRepository(db *sql.DB) *MySQLEventLogRepository {
	return &MySQLEventLogRepository{db: db}
}
