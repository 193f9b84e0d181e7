// Package domain defines campaigns: the sending policy (daily cap, blacklist, pause)
// applied to every lead attached to them.
package domain

import (
	"strings"
	"time"

	"github.com/allisson/outreach/internal/errors"
)

// Status is the operational state of a campaign.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
)

// DefaultDailyLimit applies when a lead's campaign does not exist.
const DefaultDailyLimit = 50

// Campaign errors.
var (
	// ErrCampaignNotFound indicates a campaign with the specified ID was not found.
	ErrCampaignNotFound = errors.Wrap(errors.ErrNotFound, "campaign not found")

	// ErrCampaignExists indicates the campaign ID is already taken.
	ErrCampaignExists = errors.Wrap(errors.ErrConflict, "campaign already exists")
)

// Campaign groups leads under one ICP and one sending policy.
type Campaign struct {
	ID               string
	Name             string
	ICPDescription   string
	EmailTemplateRef string
	BlacklistDomains []string
	DailyLimit       int
	Status           Status
	CreatedAt        time.Time
}

// Fallback returns the policy used when a lead references a missing campaign:
// the given cap and an empty blacklist.
func Fallback(id string, dailyLimit int) *Campaign {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &Campaign{
		ID:         id,
		Name:       id,
		DailyLimit: dailyLimit,
		Status:     StatusActive,
	}
}

// IsPaused reports whether sends for this campaign are suspended.
func (c *Campaign) IsPaused() bool {
	return c.Status == StatusPaused
}

// MatchBlacklist returns the blacklist entry matching emailDomain. An entry matches
// when it equals the domain, is a parent domain of it, or appears inside it.
func (c *Campaign) MatchBlacklist(emailDomain string) (string, bool) {
	emailDomain = strings.ToLower(strings.TrimSpace(emailDomain))
	if emailDomain == "" {
		return "", false
	}
	for _, entry := range c.BlacklistDomains {
		normalized := strings.ToLower(strings.TrimSpace(entry))
		normalized = strings.TrimPrefix(normalized, "@")
		if normalized == "" {
			continue
		}
		if emailDomain == normalized ||
			strings.HasSuffix(emailDomain, "."+normalized) ||
			strings.Contains(emailDomain, normalized) {
			return entry, true
		}
	}
	return "", false
}

// NormalizeDomains trims, lower-cases and de-duplicates blacklist entries.
func NormalizeDomains(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	result := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "@")
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}
	return result
}
