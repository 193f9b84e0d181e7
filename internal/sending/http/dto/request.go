// Package dto provides data transfer objects for the send HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/outreach/internal/validation"
	sendingUseCase "github.com/allisson/outreach/internal/sending/usecase"
)

// MaxBatchSize caps the number of leads approved in one request.
const MaxBatchSize = 100

// OverridesRequest replaces draft fields before sending. Omitted fields keep the stored draft.
type OverridesRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

// Validate checks that provided overrides are not blank.
func (r *OverridesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Subject, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Body, validation.NilOrNotEmpty),
	)
}

// ToOverrides converts the request to use case overrides.
func (r *OverridesRequest) ToOverrides() sendingUseCase.Overrides {
	return sendingUseCase.Overrides{Subject: r.Subject, Body: r.Body}
}

// ApproveRequest approves the next sequence step of one lead.
type ApproveRequest struct {
	OverridesRequest
	// Step pins the sequence step being approved. A retried request carrying the
	// same step is rejected as a duplicate instead of sending the following step.
	Step *int `json:"step"`
}

// Validate checks if the approve request is valid.
func (r *ApproveRequest) Validate() error {
	if err := r.OverridesRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Step, validation.Min(0)),
	)
}

// ToInput converts the request to a use case input for leadID.
func (r *ApproveRequest) ToInput(leadID string) sendingUseCase.ApproveInput {
	return sendingUseCase.ApproveInput{
		LeadID:    leadID,
		Overrides: r.ToOverrides(),
		Step:      r.Step,
	}
}

// BatchApproveRequest approves many leads at once, each with optional overrides.
type BatchApproveRequest struct {
	LeadIDs   []string                    `json:"lead_ids"`
	Overrides map[string]OverridesRequest `json:"overrides"`
}

// Validate checks if the batch request is valid.
func (r *BatchApproveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.LeadIDs,
			validation.Required,
			validation.Length(1, MaxBatchSize),
			validation.Each(validation.Required, customValidation.NoWhitespace),
		),
		validation.Field(&r.Overrides, validation.Each(validation.By(func(value any) error {
			overrides, _ := value.(OverridesRequest)
			return overrides.Validate()
		}))),
	)
}

// ToOverrides converts the per-lead overrides to use case overrides.
func (r *BatchApproveRequest) ToOverrides() map[string]sendingUseCase.Overrides {
	result := make(map[string]sendingUseCase.Overrides, len(r.Overrides))
	for leadID, overrides := range r.Overrides {
		result[leadID] = overrides.ToOverrides()
	}
	return result
}
