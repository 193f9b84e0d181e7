package dto

import (
	"time"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
)

// CampaignResponse represents a campaign in API responses.
type CampaignResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ICPDescription   string    `json:"icp_description"`
	EmailTemplateRef string    `json:"email_template_ref"`
	BlacklistDomains []string  `json:"blacklist_domains"`
	DailyLimit       int       `json:"daily_limit"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// MapCampaignToResponse converts a domain campaign to an API response.
func MapCampaignToResponse(campaign *campaignDomain.Campaign) CampaignResponse {
	blacklist := campaign.BlacklistDomains
	if blacklist == nil {
		blacklist = []string{}
	}
	return CampaignResponse{
		ID:               campaign.ID,
		Name:             campaign.Name,
		ICPDescription:   campaign.ICPDescription,
		EmailTemplateRef: campaign.EmailTemplateRef,
		BlacklistDomains: blacklist,
		DailyLimit:       campaign.DailyLimit,
		Status:           string(campaign.Status),
		CreatedAt:        campaign.CreatedAt,
	}
}

// ListCampaignsResponse represents a page of campaigns.
type ListCampaignsResponse struct {
	Data []CampaignResponse `json:"data"`
}

// MapCampaignsToListResponse converts domain campaigns to a list API response.
func MapCampaignsToListResponse(campaigns []*campaignDomain.Campaign) ListCampaignsResponse {
	data := make([]CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		data = append(data, MapCampaignToResponse(campaign))
	}
	return ListCampaignsResponse{Data: data}
}
