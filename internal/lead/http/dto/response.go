package dto

import (
	"time"

	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	ID              string         `json:"id"`
	Source          string         `json:"source"`
	Name            string         `json:"name"`
	CompanyName     string         `json:"company_name"`
	Email           string         `json:"email,omitempty"`
	LinkedInURL     string         `json:"linkedin_url,omitempty"`
	CampaignID      string         `json:"campaign_id"`
	Status          string         `json:"status"`
	SendCount       int            `json:"send_count"`
	LastSentAt      *time.Time     `json:"last_sent_at,omitempty"`
	NextScheduledAt *time.Time     `json:"next_scheduled_at,omitempty"`
	LastMessageID   string         `json:"last_message_id,omitempty"`
	ThreadID        string         `json:"thread_id,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	Body            string         `json:"body,omitempty"`
	CompanySummary  string         `json:"company_summary,omitempty"`
	ProductSummary  string         `json:"product_summary,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// MapLeadToResponse converts a domain lead to an API response.
func MapLeadToResponse(lead *leadDomain.Lead) LeadResponse {
	return LeadResponse{
		ID:              lead.ID,
		Source:          lead.Source,
		Name:            lead.Name,
		CompanyName:     lead.CompanyName,
		Email:           lead.Email,
		LinkedInURL:     lead.LinkedInURL,
		CampaignID:      lead.CampaignID,
		Status:          lead.Status.String(),
		SendCount:       lead.SendCount,
		LastSentAt:      lead.LastSentAt,
		NextScheduledAt: lead.NextScheduledAt,
		LastMessageID:   lead.LastMessageID,
		ThreadID:        lead.ThreadID,
		Subject:         lead.Subject,
		Body:            lead.Body,
		CompanySummary:  lead.CompanySummary,
		ProductSummary:  lead.ProductSummary,
		Metadata:        lead.Metadata,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
}

// ListLeadsResponse represents a page of leads.
type ListLeadsResponse struct {
	Data []LeadResponse `json:"data"`
}

// MapLeadsToListResponse converts domain leads to a list API response.
func MapLeadsToListResponse(leads []*leadDomain.Lead) ListLeadsResponse {
	data := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		data = append(data, MapLeadToResponse(lead))
	}
	return ListLeadsResponse{Data: data}
}

// EventLogResponse represents one audit entry of a lead.
type EventLogResponse struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	Details   string    `json:"details"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListEventLogsResponse represents a page of audit entries, newest first.
type ListEventLogsResponse struct {
	Data []EventLogResponse `json:"data"`
}

// MapEntriesToListResponse converts log entries to a list API response.
func MapEntriesToListResponse(entries []*eventlogDomain.Entry) ListEventLogsResponse {
	data := make([]EventLogResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, EventLogResponse{
			ID:        entry.ID,
			EventType: string(entry.EventType),
			Details:   entry.Details,
			Status:    entry.Status,
			CreatedAt: entry.CreatedAt,
		})
	}
	return ListEventLogsResponse{Data: data}
}
