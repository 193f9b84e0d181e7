package dto

import leadDomain "github.com/allisson/outreach/internal/lead/domain"

// ReplyResponse reports the status the reply moved the lead to.
type ReplyResponse struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status"`
}

// MapReplyToResponse builds the response for an applied reply.
func MapReplyToResponse(leadID string, status leadDomain.Status) ReplyResponse {
	return ReplyResponse{LeadID: leadID, Status: status.String()}
}
