// Package repository implements append-only lead event persistence for PostgreSQL and MySQL.
// Rows are never updated or deleted.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
)

// PostgreSQLEventLogRepository implements event log persistence for PostgreSQL.
type PostgreSQLEventLogRepository struct {
	db *sql.DB
}

// Append inserts the entry and sets its storage-assigned ID.
func (p *PostgreSQLEventLogRepository) Append(ctx context.Context, entry *eventlogDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO lead_events (lead_id, event_type, details, status, created_at)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		entry.LeadID,
		string(entry.EventType),
		entry.Details,
		entry.Status,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to append lead event")
	}
	return nil
}

// ListByLead returns the entries of one lead, newest first by insertion order.
func (p *PostgreSQLEventLogRepository) ListByLead(
	ctx context.Context,
	leadID string,
	offset, limit int,
) ([]*eventlogDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, lead_id, event_type, details, status, created_at
			  FROM lead_events
			  WHERE lead_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, leadID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list lead events")
	}
	return collectEntries(rows)
}

// NewPostgreSQLEventLogRepository creates a new PostgreSQL event log repository.
func NewPostgreSQLEventLogRepository(db *sql.DB) *PostgreSQLEventLogRepository {
	return &PostgreSQLEventLogRepository{db: db}
}

func collectEntries(rows *sql.Rows) ([]*eventlogDomain.Entry, error) {
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*eventlogDomain.Entry, 0)
	for rows.Next() {
		var entry eventlogDomain.Entry
		var eventType string
		if err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&eventType,
			&entry.Details,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan lead event")
		}
		entry.EventType = eventlogDomain.EventType(eventType)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate lead events")
	}
	return entries, nil
}
