package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
)

type campaignUseCase struct {
	campaignRepo CampaignRepository
	clock        clock.Clock
	logger       *slog.Logger
}

func (c *campaignUseCase) Create(ctx context.Context, input CreateInput) (*campaignDomain.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "campaign name is required")
	}
	if input.DailyLimit < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "daily limit must not be negative")
	}

	status := input.Status
	switch status {
	case "":
		status = campaignDomain.StatusActive
	case campaignDomain.StatusActive, campaignDomain.StatusPaused:
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown campaign status %q", status)
	}

	dailyLimit := input.DailyLimit
	if dailyLimit == 0 {
		dailyLimit = campaignDomain.DefaultDailyLimit
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	campaign := &campaignDomain.Campaign{
		ID:               id,
		Name:             name,
		ICPDescription:   input.ICPDescription,
		EmailTemplateRef: input.EmailTemplateRef,
		BlacklistDomains: campaignDomain.NormalizeDomains(input.BlacklistDomains),
		DailyLimit:       dailyLimit,
		Status:           status,
		CreatedAt:        c.clock.Now().UTC(),
	}
	if err := c.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	c.logger.Info("campaign created",
		slog.String("campaign_id", campaign.ID),
		slog.Int("daily_limit", campaign.DailyLimit),
		slog.Int("blacklist_domains", len(campaign.BlacklistDomains)),
	)
	return campaign, nil
}

func (c *campaignUseCase) Get(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return c.campaignRepo.Get(ctx, id)
}

func (c *campaignUseCase) List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	return c.campaignRepo.List(ctx, offset, limit)
}

// Pause blocks admission for every lead of the campaign.
func (c *campaignUseCase) Pause(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return c.setStatus(ctx, id, campaignDomain.StatusPaused)
}

func (c *campaignUseCase) Resume(ctx context.Context, id string) (*campaignDomain.Campaign, error) {
	return c.setStatus(ctx, id, campaignDomain.StatusActive)
}

func (c *campaignUseCase) setStatus(
	ctx context.Context,
	id string,
	status campaignDomain.Status,
) (*campaignDomain.Campaign, error) {
	if err := c.campaignRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	c.logger.Info("campaign status changed", slog.String("campaign_id", id), slog.String("status", string(status)))
	return c.campaignRepo.Get(ctx, id)
}

// NewCampaignUseCase creates a new CampaignUseCase.
func NewCampaignUseCase(campaignRepo CampaignRepository, clk clock.Clock, logger *slog.Logger) CampaignUseCase {
	return &campaignUseCase{
		campaignRepo: campaignRepo,
		clock:        clk,
		logger:       logger,
	}
}
