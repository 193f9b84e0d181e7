package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
	"github.com/allisson/outreach/internal/testutil/memstore"
)

func newCampaignUseCase(campaigns ...*campaignDomain.Campaign) (CampaignUseCase, *memstore.Campaigns) {
	repo := memstore.NewCampaigns(campaigns...)
	fake := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return NewCampaignUseCase(repo, fake, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCampaignUseCase_Create(t *testing.T) {
	uc, _ := newCampaignUseCase()

	campaign, err := uc.Create(context.Background(), CreateInput{
		ID:               "spring",
		Name:             " Spring outbound ",
		BlacklistDomains: []string{" Competitor.com", "@competitor.com", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "spring", campaign.ID)
	assert.Equal(t, "Spring outbound", campaign.Name)
	assert.Equal(t, []string{"competitor.com"}, campaign.BlacklistDomains)
	assert.Equal(t, campaignDomain.DefaultDailyLimit, campaign.DailyLimit)
	assert.Equal(t, campaignDomain.StatusActive, campaign.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), campaign.CreatedAt)
}

func TestCampaignUseCase_Create_GeneratesID(t *testing.T) {
	uc, _ := newCampaignUseCase()

	campaign, err := uc.Create(context.Background(), CreateInput{Name: "Q2", DailyLimit: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, campaign.ID)
	assert.Equal(t, 10, campaign.DailyLimit)
}

func TestCampaignUseCase_Create_Invalid(t *testing.T) {
	uc, _ := newCampaignUseCase(&campaignDomain.Campaign{ID: "default", Name: "Default"})
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"blank name", CreateInput{Name: "  "}, apperrors.ErrInvalidInput},
		{"negative limit", CreateInput{Name: "x", DailyLimit: -1}, apperrors.ErrInvalidInput},
		{"unknown status", CreateInput{Name: "x", Status: "archived"}, apperrors.ErrInvalidInput},
		{"duplicate id", CreateInput{ID: "default", Name: "x"}, campaignDomain.ErrCampaignExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCampaignUseCase_PauseResume(t *testing.T) {
	uc, _ := newCampaignUseCase(&campaignDomain.Campaign{ID: "spring", Status: campaignDomain.StatusActive})
	ctx := context.Background()

	campaign, err := uc.Pause(ctx, "spring")
	require.NoError(t, err)
	assert.True(t, campaign.IsPaused())

	campaign, err = uc.Resume(ctx, "spring")
	require.NoError(t, err)
	assert.False(t, campaign.IsPaused())

	_, err = uc.Pause(ctx, "missing")
	assert.ErrorIs(t, err, campaignDomain.ErrCampaignNotFound)
}
