// Package domain defines the outcome of send admission control.
package domain

import (
	"fmt"

	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

// Reason explains why a send was refused.
type Reason string

const (
	ReasonLeadStopped    Reason = "lead stopped"
	ReasonCampaignPaused Reason = "campaign paused"
	ReasonDailyCap       Reason = "daily cap reached"
	ReasonThrottled      Reason = "throttled"
	ReasonBlacklisted    Reason = "blacklisted domain"
)

// Decision is the result of an admission check. A refusal may carry a forced
// transition the caller must apply to the lead and record in its log.
type Decision struct {
	Allowed       bool
	Reason        Reason
	Detail        string
	ForcedStatus  *leadDomain.Status
	MatchedDomain string
	// Slot is the throttle token held by an allowed decision.
	Slot string
}

// Allow admits the send while slot is held.
func Allow(slot string) Decision {
	return Decision{Allowed: true, Slot: slot}
}

// Block refuses the send without touching the lead.
func Block(reason Reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

// Blacklisted refuses the send and forces the lead to stopped_blacklist.
func Blacklisted(domain string) Decision {
	forced := leadDomain.StatusStopped(leadDomain.StopBlacklist)
	return Decision{
		Reason:        ReasonBlacklisted,
		Detail:        fmt.Sprintf("domain %s is blacklisted", domain),
		ForcedStatus:  &forced,
		MatchedDomain: domain,
	}
}

// String renders the decision for the event log.
func (d Decision) String() string {
	if d.Allowed {
		return "allowed"
	}
	if d.Detail == "" {
		return string(d.Reason)
	}
	return fmt.Sprintf("%s: %s", d.Reason, d.Detail)
}
