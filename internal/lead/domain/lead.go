// Package domain defines the lead aggregate and its lifecycle state machine.
//
// A lead moves new -> enriched -> processed -> sent_step{N} and ends in replied_{category}
// or stopped_{reason}. Every move goes through Transition; the aggregate is the only
// mutable entity of the outreach core.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCampaignID is the reserved campaign assigned to leads ingested without one.
const DefaultCampaignID = "default"

// Lead is the canonical record of one prospect.
type Lead struct {
	ID              string
	Source          string
	Name            string
	CompanyName     string
	Email           string // empty when unknown
	LinkedInURL     string
	CampaignID      string
	Status          Status
	SendCount       int
	LastSentAt      *time.Time
	NextScheduledAt *time.Time
	LastMessageID   string
	ThreadID        string
	Subject         string
	Body            string
	CompanySummary  string
	ProductSummary  string
	Metadata        map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EmailDomain returns the lower-cased part of the email after '@', or "" when absent.
func (l *Lead) EmailDomain() string {
	at := strings.LastIndex(l.Email, "@")
	if at < 0 || at == len(l.Email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(l.Email[at+1:]))
}

// NextStep is the sequence step the next successful send will reach.
func (l *Lead) NextStep() int {
	return l.SendCount
}

// ApplyDraft replaces the draft fields that are non-nil and reports whether anything changed.
func (l *Lead) ApplyDraft(subject, body *string) bool {
	changed := false
	if subject != nil && *subject != l.Subject {
		l.Subject = *subject
		changed = true
	}
	if body != nil && *body != l.Body {
		l.Body = *body
		changed = true
	}
	return changed
}

// MarkSent records a delivered step. The thread id is assigned on the first send and
// kept for every follow-up of the same sequence.
func (l *Lead) MarkSent(step int, messageID string, sentAt time.Time) error {
	next, err := Transition(l.Status, l.SendCount, Send(step))
	if err != nil {
		return err
	}
	if l.ThreadID == "" {
		l.ThreadID = fmt.Sprintf("th_%s_%d", l.ID, sentAt.Unix())
	}
	l.Status = next
	l.LastSentAt = &sentAt
	l.LastMessageID = messageID
	l.SendCount++
	l.UpdatedAt = sentAt
	return nil
}

// Apply runs ev through Transition and stores the resulting status.
func (l *Lead) Apply(ev Event, now time.Time) error {
	next, err := Transition(l.Status, l.SendCount, ev)
	if err != nil {
		return err
	}
	l.Status = next
	l.UpdatedAt = now
	return nil
}
