// Package dto provides data transfer objects for the lead HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	leadUseCase "github.com/allisson/outreach/internal/lead/usecase"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// IngestLeadRequest contains a prospect to add to the pipeline.
type IngestLeadRequest struct {
	Source      string         `json:"source"`
	Name        string         `json:"name"`
	CompanyName string         `json:"company_name"`
	Email       string         `json:"email"`
	LinkedInURL string         `json:"linkedin_url"`
	CampaignID  string         `json:"campaign_id"`
	Metadata    map[string]any `json:"metadata"`
}

// Validate checks if the ingest request is valid.
func (r *IngestLeadRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Source, validation.Length(0, 100)),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.CompanyName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email, customValidation.Email, validation.Length(0, 320)),
		validation.Field(&r.LinkedInURL, validation.Length(0, 500)),
		validation.Field(&r.CampaignID, customValidation.NoWhitespace, validation.Length(0, 100)),
	)
}

// ToInput converts the request to a use case input.
func (r *IngestLeadRequest) ToInput() leadUseCase.IngestInput {
	return leadUseCase.IngestInput{
		Source:      r.Source,
		Name:        r.Name,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		LinkedInURL: r.LinkedInURL,
		CampaignID:  r.CampaignID,
		Metadata:    r.Metadata,
	}
}

// EnrichmentRequest contains the research attached to a new lead.
type EnrichmentRequest struct {
	CompanySummary string `json:"company_summary"`
	ProductSummary string `json:"product_summary"`
}

// Validate checks if the enrichment request is valid.
func (r *EnrichmentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CompanySummary, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ProductSummary, validation.Length(0, 10000)),
	)
}

// DraftRequest contains the generated email copy.
type DraftRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate checks if the draft request is valid.
func (r *DraftRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Subject,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Body, validation.Required, customValidation.NotBlank),
	)
}
