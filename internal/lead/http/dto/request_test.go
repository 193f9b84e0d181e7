package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestLeadRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     IngestLeadRequest
		wantErr bool
	}{
		{"valid", IngestLeadRequest{Name: "Ada", CompanyName: "Acme", Email: "ada@acme.io"}, false},
		{"no email", IngestLeadRequest{Name: "Ada", CompanyName: "Acme"}, false},
		{"missing name", IngestLeadRequest{CompanyName: "Acme"}, true},
		{"blank company", IngestLeadRequest{Name: "Ada", CompanyName: "  "}, true},
		{"bad email", IngestLeadRequest{Name: "Ada", CompanyName: "Acme", Email: "ada"}, true},
		{"campaign with spaces", IngestLeadRequest{Name: "Ada", CompanyName: "Acme", CampaignID: " q2"}, true},
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

func TestDraftRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DraftRequest{Subject: "Hi", Body: "Hello"}).Validate())
	assert.Error(t, (&DraftRequest{Subject: "Hi"}).Validate())
	assert.Error(t, (&DraftRequest{Body: "Hello"}).Validate())
}

func TestEnrichmentRequest_Validate(t *testing.T) {
	assert.NoError(t, (&EnrichmentRequest{CompanySummary: "B2B payroll"}).Validate())
	assert.Error(t, (&EnrichmentRequest{}).Validate())
}
