package repository

import (
	"context"
	"database/sql"
	"fmt"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	"github.com/allisson/outreach/internal/database"
	apperrors "github.com/allisson/outreach/internal/errors"
)

// MySQLDailyMetricRepository implements daily metric persistence for MySQL.
type MySQLDailyMetricRepository struct {
	db *sql.DB
}

// Increment adds one to counter on the row of date.
func (m *MySQLDailyMetricRepository) Increment(
	ctx context.Context,
	date string,
	counter dailymetricDomain.Counter,
) error {
	if !counter.Valid() {
		return dailymetricDomain.ErrUnknownCounter
	}

	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`INSERT INTO daily_metrics (date, %[1]s) VALUES (?, 1)
			  ON DUPLICATE KEY UPDATE %[1]s = %[1]s + 1`, counter)

	if _, err := querier.ExecContext(ctx, query, date); err != nil {
		return apperrors.Wrapf(err, "failed to increment %s", counter)
	}
	return nil
}

// Get returns the row of date, or a zeroed row when nothing was recorded yet.
func (m *MySQLDailyMetricRepository) Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	querier := database.GetTx(ctx, m.db)
	return scanDailyMetric(querier.QueryRowContext(ctx, fmt.Sprintf(selectDailyMetric, "?"), date), date)
}

// NewMySQLDailyMetricRepository creates a new MySQL daily metric repository.
func NewMySQLDailyMetricRepository(db *sql.DB) *MySQLDailyMetricRepository {
	return &MySQLDailyMetricRepository{db: db}
}
