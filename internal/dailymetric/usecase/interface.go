// Package usecase implements the per-day outreach counters.
package usecase

import (
	"context"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
)

// DailyMetricRepository defines the interface for daily counter persistence.
type DailyMetricRepository interface {
	Increment(ctx context.Context, date string, counter dailymetricDomain.Counter) error
	Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error)
}

// DailyMetricUseCase increments and reads the counters of the current local date.
type DailyMetricUseCase interface {
	Increment(ctx context.Context, counter dailymetricDomain.Counter) error
	Today(ctx context.Context) (*dailymetricDomain.DailyMetric, error)
	Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error)
}
