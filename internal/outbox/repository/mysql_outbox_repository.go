package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
	"github.com/allisson/outreach/internal/outbox/domain"
)

// MySQLOutboxEventRepository handles outbox event persistence for MySQL. Ids are
// stored as BINARY(16).
type MySQLOutboxEventRepository struct {
	db *sql.DB
}

// NewMySQLOutboxEventRepository creates a new MySQLOutboxEventRepository.
func NewMySQLOutboxEventRepository(db *sql.DB) *MySQLOutboxEventRepository {
	return &MySQLOutboxEventRepository{db: db}
}

func (r *MySQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO outbox_events (` + outboxColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

func (r *MySQLOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + outboxColumns + `
			  FROM outbox_events
			  WHERE status = ?
			  ORDER BY created_at ASC
			  LIMIT ?
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
		var idBytes []byte

		err := rows.Scan(&idBytes, &event.EventType, &event.Payload, &event.Status,
			&event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox event")
		}
		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode outbox event id")
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate outbox events")
	}
	return events, nil
}

func (r *MySQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE outbox_events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
			  WHERE id = ?`

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, event.UpdatedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}
