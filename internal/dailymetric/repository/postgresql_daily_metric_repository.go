// Package repository implements per-date counter storage for PostgreSQL and MySQL.
//
// Rows are created lazily by the first increment of a date. Each increment touches a
// single column with an atomic upsert so concurrent increments of different counters
// on the same row never overwrite each other.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
)

const selectDailyMetric = `SELECT date, sent_count, reply_count, positive_count, bounce_count
			  FROM daily_metrics WHERE date = %s`

// PostgreSQLDailyMetricRepository implements daily metric persistence for PostgreSQL.
type PostgreSQLDailyMetricRepository struct {
	db *sql.DB
}

// Increment adds one to counter on the row of date.
func (p *PostgreSQLDailyMetricRepository) Increment(
	ctx context.Context,
	date string,
	counter dailymetricDomain.Counter,
) error {
	if !counter.Valid() {
		return dailymetricDomain.ErrUnknownCounter
	}

	querier := database.GetTx(ctx, p.db)

	// counter is validated above, so interpolating the column name is safe.
	query := fmt.Sprintf(`INSERT INTO daily_metrics (date, %[1]s) VALUES ($1, 1)
			  ON CONFLICT (date) DO UPDATE SET %[1]s = daily_metrics.%[1]s + 1`, counter)

	if _, err := querier.ExecContext(ctx, query, date); err != nil {
		return apperrors.Wrapf(err, "failed to increment %s", counter)
	}
	return nil
}

// Get returns the row of date, or a zeroed row when nothing was recorded yet.
func (p *PostgreSQLDailyMetricRepository) Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	querier := database.GetTx(ctx, p.db)
	return scanDailyMetric(querier.QueryRowContext(ctx, fmt.Sprintf(selectDailyMetric, "$1"), date), date)
}

// NewPostgreSQLDailyMetricRepository creates a new PostgreSQL daily metric repository.
func NewPostgreSQLDailyMetricRepository(db *sql.DB) *PostgreSQLDailyMetricRepository {
	return &PostgreSQLDailyMetricRepository{db: db}
}

func scanDailyMetric(row *sql.Row, date string) (*dailymetricDomain.DailyMetric, error) {
	var metric dailymetricDomain.DailyMetric
	err := row.Scan(
		&metric.Date,
		&metric.SentCount,
		&metric.ReplyCount,
		&metric.PositiveCount,
		&metric.BounceCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return dailymetricDomain.Empty(date), nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get daily metric")
	}
	return &metric, nil
}
