package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	"github.com/allisson/outreach/internal/dailymetric/http/dto"
	apperrors "github.com/allisson/outreach/internal/errors"
)

type mockDailyMetricUseCase struct {
	mock.Mock
}

func (m *mockDailyMetricUseCase) Increment(ctx context.Context, counter dailymetricDomain.Counter) error {
	return m.Called(ctx, counter).Error(0)
}

func (m *mockDailyMetricUseCase) Today(ctx context.Context) (*dailymetricDomain.DailyMetric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dailymetricDomain.DailyMetric), args.Error(1)
}

func (m *mockDailyMetricUseCase) Get(ctx context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dailymetricDomain.DailyMetric), args.Error(1)
}

func setupTestHandler(t *testing.T) (*DailyMetricHandler, *mockDailyMetricUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	useCase := &mockDailyMetricUseCase{}
	t.Cleanup(func() { useCase.AssertExpectations(t) })
	return NewDailyMetricHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil))), useCase
}

func createTestContext(path string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	c.Params = params
	return c, w
}

func TestDailyMetricHandler_TodayHandler(t *testing.T) {
	handler, useCase := setupTestHandler(t)
	useCase.On("Today", mock.Anything).Return(&dailymetricDomain.DailyMetric{
		Date:          "2026-03-10",
		SentCount:     12,
		ReplyCount:    3,
		PositiveCount: 1,
		BounceCount:   2,
	}, nil).Once()

	c, w := createTestContext("/v1/metrics/today")
	handler.TodayHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.DailyMetricResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.DailyMetricResponse{
		Date:          "2026-03-10",
		SentCount:     12,
		ReplyCount:    3,
		PositiveCount: 1,
		BounceCount:   2,
	}, resp)
}

func TestDailyMetricHandler_GetHandler(t *testing.T) {
	t.Run("NoActivity", func(t *testing.T) {
		handler, useCase := setupTestHandler(t)
		useCase.On("Get", mock.Anything, "2026-01-01").Return(dailymetricDomain.Empty("2026-01-01"), nil).Once()

		c, w := createTestContext("/v1/metrics/days/2026-01-01", gin.Param{Key: "date", Value: "2026-01-01"})
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"date":"2026-01-01","sent_count":0,"reply_count":0,"positive_count":0,"bounce_count":0}`,
			w.Body.String())
	})

	t.Run("InvalidDate", func(t *testing.T) {
		handler, useCase := setupTestHandler(t)
		useCase.On("Get", mock.Anything, "yesterday").
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, `invalid date "yesterday"`)).Once()

		c, w := createTestContext("/v1/metrics/days/yesterday", gin.Param{Key: "date", Value: "yesterday"})
		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
