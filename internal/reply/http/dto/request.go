// Package dto provides data transfer objects for the reply HTTP API.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	replyDomain "github.com/allisson/outreach/internal/reply/domain"
	customValidation "github.com/allisson/outreach/internal/validation"
)

// ReplyRequest submits a reply the classifier already labelled.
type ReplyRequest struct {
	MessageID      string     `json:"message_id"`
	Content        string     `json:"content"`
	Classification string     `json:"classification"`
	ReceivedAt     *time.Time `json:"received_at"`
}

// Validate checks if the reply request is valid.
func (r *ReplyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MessageID, customValidation.NoWhitespace, validation.Length(0, 255)),
		validation.Field(&r.Classification, validation.Required, customValidation.ReplyClassification),
	)
}

// ToReply converts the request to a reply for leadID. A missing ReceivedAt is filled
// in by the use case.
func (r *ReplyRequest) ToReply(leadID string) *replyDomain.Reply {
	reply := &replyDomain.Reply{
		MessageID:      r.MessageID,
		LeadID:         leadID,
		Content:        r.Content,
		Classification: r.Classification,
	}
	if r.ReceivedAt != nil {
		reply.ReceivedAt = r.ReceivedAt.UTC()
	}
	return reply
}
