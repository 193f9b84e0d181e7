package usecase

import (
	"context"
	"time"

	"github.com/allisson/outreach/internal/clock"
	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	apperrors "github.com/allisson/outreach/internal/errors"
)

type dailyMetricUseCase struct {
	repo  DailyMetricRepository
	clock clock.Clock
}

func (d *dailyMetricUseCase) Increment(ctx context.Context, counter dailymetricDomain.Counter) error {
	return d.repo.Increment(ctx, dailymetricDomain.DateKey(d.clock.Now()), counter)
}

func (d *dailyMetricUseCase) Today(ctx context.Context) (*dailymetricDomain.DailyMetric, error) {
	return d.Get(ctx, dailymetricDomain.DateKey(d.clock.Now()))
}

func (d *dailyMetricUseCase) Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	if _, err := time.Parse(dailymetricDomain.DateLayout, date); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid date %q", date)
	}

	metric, err := d.repo.Get(ctx, date)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get daily metric")
	}
	return metric, nil
}

// NewDailyMetricUseCase creates a new DailyMetricUseCase keyed on the local date of clk.
func NewDailyMetricUseCase(repo DailyMetricRepository, clk clock.Clock) DailyMetricUseCase {
	return &dailyMetricUseCase{repo: repo, clock: clk}
}
