// Package domain defines inbound replies and the metric and notification effects of
// classifying them.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// ExcerptLength caps the reply content carried by notifications.
const ExcerptLength = 280

// Reply is an inbound message already labelled by the classifier. MessageID is the
// provider id of the inbound message and may be empty for manual submissions.
type Reply struct {
	MessageID      string
	LeadID         string
	ReceivedAt     time.Time
	Content        string
	Classification string
}

// Validate checks the fields every reply must carry.
func (r *Reply) Validate() error {
	if strings.TrimSpace(r.LeadID) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "reply lead id is required")
	}
	return nil
}

// Counters returns the daily counters a reply of category increments.
func Counters(category leadDomain.ReplyCategory) []dailymetricDomain.Counter {
	switch category {
	case leadDomain.CategoryBounce:
		return []dailymetricDomain.Counter{dailymetricDomain.CounterBounce}
	case leadDomain.CategoryUnsubscribe:
		return nil
	case leadDomain.CategoryInterested:
		return []dailymetricDomain.Counter{dailymetricDomain.CounterPositive, dailymetricDomain.CounterReply}
	default:
		return []dailymetricDomain.Counter{dailymetricDomain.CounterReply}
	}
}

// Notification is the outbox payload describing an applied reply.
type Notification struct {
	LeadID         string    `json:"lead_id"`
	LeadName       string    `json:"lead_name"`
	CompanyName    string    `json:"company_name"`
	Email          string    `json:"email,omitempty"`
	CampaignID     string    `json:"campaign_id"`
	MessageID      string    `json:"message_id,omitempty"`
	Classification string    `json:"classification"`
	Status         string    `json:"status"`
	Excerpt        string    `json:"excerpt"`
	ReceivedAt     time.Time `json:"received_at"`
}

// NewNotification describes reply as applied to lead.
func NewNotification(lead *leadDomain.Lead, reply *Reply, category leadDomain.ReplyCategory) Notification {
	return Notification{
		LeadID:         lead.ID,
		LeadName:       lead.Name,
		CompanyName:    lead.CompanyName,
		Email:          lead.Email,
		CampaignID:     lead.CampaignID,
		MessageID:      reply.MessageID,
		Classification: string(category),
		Status:         lead.Status.String(),
		Excerpt:        Excerpt(reply.Content, ExcerptLength),
		ReceivedAt:     reply.ReceivedAt,
	}
}

// Excerpt returns at most n runes of content with surrounding space removed.
func Excerpt(content string, n int) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= n {
		return content
	}
	return string([]rune(content)[:n])
}
