package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
)

func TestCreateCampaignRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCampaignRequest
		wantErr bool
	}{
		{"minimal", CreateCampaignRequest{Name: "Fintech Q3"}, false},
		{"full", CreateCampaignRequest{
			ID:               "fintech-q3",
			Name:             "Fintech Q3",
			BlacklistDomains: []string{"competitor.com", "partner.io"},
			DailyLimit:       30,
			Status:           "paused",
		}, false},
		{"missing name", CreateCampaignRequest{}, true},
		{"blank name", CreateCampaignRequest{Name: "   "}, true},
		{"id with spaces", CreateCampaignRequest{ID: "a b", Name: "x"}, true},
		{"negative limit", CreateCampaignRequest{Name: "x", DailyLimit: -1}, true},
		{"unknown status", CreateCampaignRequest{Name: "x", Status: "archived"}, true},
		{"bad domain", CreateCampaignRequest{Name: "x", BlacklistDomains: []string{"not a domain"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapCampaignToResponse(t *testing.T) {
	resp := MapCampaignToResponse(&campaignDomain.Campaign{
		ID:         "c1",
		Name:       "Fintech",
		DailyLimit: 50,
		Status:     campaignDomain.StatusActive,
	})

	assert.Equal(t, "c1", resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.NotNil(t, resp.BlacklistDomains)
	assert.Empty(t, resp.BlacklistDomains)
}
