// Package repository provides outbox event persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	"github.com/allisson/outreach/internal/outbox/domain"
)

const outboxColumns = `id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at`

// PostgreSQLOutboxEventRepository handles outbox event persistence for PostgreSQL.
type PostgreSQLOutboxEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLOutboxEventRepository creates a new PostgreSQLOutboxEventRepository.
func NewPostgreSQLOutboxEventRepository(db *sql.DB) *PostgreSQLOutboxEventRepository {
	return &PostgreSQLOutboxEventRepository{db: db}
}

// Create inserts a new outbox event. Inside a transaction it commits with the lead change.
func (r *PostgreSQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_events (` + outboxColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(ctx, query, event.ID, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents locks up to limit pending events, oldest first. Rows locked by
// another worker are skipped.
func (r *PostgreSQLOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + outboxColumns + `
			  FROM outbox_events
			  WHERE status = $1
			  ORDER BY created_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.OutboxEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var event domain.OutboxEvent
		err := rows.Scan(&event.ID, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox event")
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate outbox events")
	}
	return events, nil
}

// Update writes the delivery state of an outbox event.
func (r *PostgreSQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_events
			  SET status = $1, retries = $2, last_error = $3, processed_at = $4, updated_at = $5
			  WHERE id = $6`

	_, err := querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, event.UpdatedAt, event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}
