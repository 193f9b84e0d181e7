package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("outreach")

	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.Contains(t, scrape(t, provider), "go_goroutines")
}

func TestProvider_RegisterDailyGauges(t *testing.T) {
	provider, err := NewProvider("outreach")
	require.NoError(t, err)

	err = provider.RegisterDailyGauges(func(context.Context) (DailyCounts, error) {
		return DailyCounts{Sent: 3, Replies: 2, Positive: 1, Bounces: 1, Limit: 5}, nil
	})
	require.NoError(t, err)

	body := scrape(t, provider)
	assert.Contains(t, body, `outreach_daily_events{kind="sent"`)
	assert.Contains(t, body, `outreach_daily_events{kind="bounce"`)
	assert.Contains(t, body, "outreach_daily_send_headroom")
}

func TestProvider_RegisterDailyGauges_ReadError(t *testing.T) {
	provider, err := NewProvider("outreach")
	require.NoError(t, err)

	err = provider.RegisterDailyGauges(func(context.Context) (DailyCounts, error) {
		return DailyCounts{}, errors.New("database unavailable")
	})
	require.NoError(t, err)

	assert.NotContains(t, scrape(t, provider), "outreach_daily_events{")
}

func TestProvider_Shutdown(t *testing.T) {
	provider, err := NewProvider("outreach")
	require.NoError(t, err)
	assert.NoError(t, provider.Shutdown(context.Background()))

	assert.NoError(t, (&Provider{}).Shutdown(context.Background()))
}
