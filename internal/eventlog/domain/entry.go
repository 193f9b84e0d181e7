// Package domain defines the append-only lead event log.
package domain

import (
	"time"
)

// EventType tags an entry of the lead event log.
type EventType string

const (
	EventIngest       EventType = "INGEST"
	EventEnrichOK     EventType = "ENRICH_OK"
	EventDraftOK      EventType = "DRAFT_OK"
	EventDraftUpdated EventType = "DRAFT_UPDATED"
	EventSendAttempt  EventType = "SEND_ATTEMPT"
	EventSendOK       EventType = "SEND_OK"
	EventSendBlocked  EventType = "SEND_BLOCKED"
	EventSendRejected EventType = "SEND_REJECTED"
	EventSendErr      EventType = "SEND_ERR"
	EventReply        EventType = "REPLY_RECEIVED"
	EventReplyIgnored EventType = "REPLY_IGNORED"
	EventStopped      EventType = "STOPPED"
)

// Entry is immutable once written. ID is assigned by storage and is the authoritative
// order within a lead; CreatedAt is advisory. Status holds the lead status after the
// action when the action changed or confirmed it, and is empty otherwise.
type Entry struct {
	ID        int64
	LeadID    string
	EventType EventType
	Details   string
	Status    string
	CreatedAt time.Time
}
