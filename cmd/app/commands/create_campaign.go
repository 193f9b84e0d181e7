package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
)

// RunCreateCampaign creates a campaign. blacklist is a comma-separated domain list.
func RunCreateCampaign(
	ctx context.Context,
	useCase campaignUseCase.CampaignUseCase,
	logger *slog.Logger,
	writer io.Writer,
	input campaignUseCase.CreateInput,
	blacklist string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if input.DailyLimit < 0 {
		return fmt.Errorf("daily limit must not be negative, got: %d", input.DailyLimit)
	}
	input.BlacklistDomains = splitList(blacklist)

	campaign, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	logger.Info("campaign created",
		slog.String("campaign_id", campaign.ID),
		slog.Int("daily_limit", campaign.DailyLimit),
	)

	if format == "json" {
		return writeJSON(writer, campaignJSON(campaign))
	}
	outputCampaignText(writer, campaign)
	return nil
}

func campaignJSON(campaign *campaignDomain.Campaign) map[string]any {
	return map[string]any{
		"id":                 campaign.ID,
		"name":               campaign.Name,
		"daily_limit":        campaign.DailyLimit,
		"blacklist_domains":  campaign.BlacklistDomains,
		"email_template_ref": campaign.EmailTemplateRef,
		"status":             string(campaign.Status),
	}
}

func outputCampaignText(writer io.Writer, campaign *campaignDomain.Campaign) {
	_, _ = fmt.Fprintf(writer, "Campaign created successfully\n\n")
	_, _ = fmt.Fprintf(writer, "ID:          %s\n", campaign.ID)
	_, _ = fmt.Fprintf(writer, "Name:        %s\n", campaign.Name)
	_, _ = fmt.Fprintf(writer, "Daily limit: %d\n", campaign.DailyLimit)
	_, _ = fmt.Fprintf(writer, "Status:      %s\n", campaign.Status)
	if len(campaign.BlacklistDomains) > 0 {
		_, _ = fmt.Fprintf(writer, "Blacklist:   %s\n", strings.Join(campaign.BlacklistDomains, ", "))
	}
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	items := make([]string, 0)
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
