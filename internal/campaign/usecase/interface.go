// Package usecase manages campaigns: the sending policy shared by a group of leads.
package usecase

import (
	"context"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
)

// CampaignRepository defines the interface for campaign persistence.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *campaignDomain.Campaign) error
	Get(ctx context.Context, id string) (*campaignDomain.Campaign, error)
	List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error)
	UpdateStatus(ctx context.Context, id string, status campaignDomain.Status) error
}

// CreateInput describes a new campaign. An empty ID is replaced by a UUIDv7, a zero
// DailyLimit by DefaultDailyLimit and an empty Status by active.
type CreateInput struct {
	ID               string
	Name             string
	ICPDescription   string
	EmailTemplateRef string
	BlacklistDomains []string
	DailyLimit       int
	Status           campaignDomain.Status
}

// CampaignUseCase defines campaign operations.
type CampaignUseCase interface {
	Create(ctx context.Context, input CreateInput) (*campaignDomain.Campaign, error)
	Get(ctx context.Context, id string) (*campaignDomain.Campaign, error)
	List(ctx context.Context, offset, limit int) ([]*campaignDomain.Campaign, error)
	Pause(ctx context.Context, id string) (*campaignDomain.Campaign, error)
	Resume(ctx context.Context, id string) (*campaignDomain.Campaign, error)
}
