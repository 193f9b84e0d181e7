// Package dto provides data transfer objects for the campaign HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	campaignUseCase "github.com/allisson/outreach/internal/campaign/usecase"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// CreateCampaignRequest contains the parameters for creating a campaign.
type CreateCampaignRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ICPDescription   string   `json:"icp_description"`
	EmailTemplateRef string   `json:"email_template_ref"`
	BlacklistDomains []string `json:"blacklist_domains"`
	DailyLimit       int      `json:"daily_limit"`
	Status           string   `json:"status"`
}

// Validate checks if the create campaign request is valid.
func (r *CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, customValidation.NoWhitespace, validation.Length(0, 100)),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.BlacklistDomains, validation.Each(customValidation.Domain)),
		validation.Field(&r.DailyLimit, validation.Min(0), validation.Max(10000)),
		validation.Field(&r.Status, validation.In(
			string(campaignDomain.StatusActive),
			string(campaignDomain.StatusPaused),
		)),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateCampaignRequest) ToInput() campaignUseCase.CreateInput {
	return campaignUseCase.CreateInput{
		ID:               r.ID,
		Name:             r.Name,
		ICPDescription:   r.ICPDescription,
		EmailTemplateRef: r.EmailTemplateRef,
		BlacklistDomains: r.BlacklistDomains,
		DailyLimit:       r.DailyLimit,
		Status:           campaignDomain.Status(r.Status),
	}
}
