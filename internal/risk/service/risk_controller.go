package service

import (
	"context"
	"fmt"
	"log/slog"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	riskDomain "github.com/allisson/outreach/internal/risk/domain"
)

// CampaignGetter looks up the sending policy of a lead.
type CampaignGetter interface {
	Get(ctx context.Context, id string) (*campaignDomain.Campaign, error)
}

// DailyCounters reads and increments today's counters.
type DailyCounters interface {
	Today(ctx context.Context) (*dailymetricDomain.DailyMetric, error)
	Increment(ctx context.Context, counter dailymetricDomain.Counter) error
}

// RiskController decides whether a lead may be sent to now.
type RiskController interface {
	// CanSend runs the admission checks in order and stops at the first refusal.
	// The daily cap is read while the throttle slot is held, so concurrent callers
	// cannot all pass it. An allowed decision keeps the slot in Decision.Slot.
	CanSend(ctx context.Context, lead *leadDomain.Lead) (riskDomain.Decision, error)
	// RecordSendSuccess counts a confirmed delivery and records its time.
	RecordSendSuccess(ctx context.Context) error
	// Release frees the slot of an allowed decision once its outcome is persisted.
	Release(ctx context.Context, slot string) error
}

type riskController struct {
	campaigns         CampaignGetter
	counters          DailyCounters
	throttle          Throttle
	defaultDailyLimit int
	logger            *slog.Logger
}

func (r *riskController) CanSend(ctx context.Context, lead *leadDomain.Lead) (riskDomain.Decision, error) {
	if lead.Status.IsStopped() {
		return riskDomain.Block(riskDomain.ReasonLeadStopped, lead.Status.String()), nil
	}

	campaign, err := r.campaigns.Get(ctx, lead.CampaignID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		campaign = campaignDomain.Fallback(lead.CampaignID, r.defaultDailyLimit)
	} else if err != nil {
		return riskDomain.Decision{}, apperrors.Wrap(err, "failed to load campaign")
	}

	if campaign.IsPaused() {
		return riskDomain.Block(riskDomain.ReasonCampaignPaused, campaign.ID), nil
	}

	slot, reserved, err := r.throttle.Reserve(ctx)
	if err != nil {
		return riskDomain.Decision{}, err
	}
	if !reserved {
		return r.throttled(ctx)
	}

	decision, err := r.checkHeld(ctx, lead, campaign)
	if err != nil || !decision.Allowed {
		if releaseErr := r.throttle.Release(context.WithoutCancel(ctx), slot); releaseErr != nil && err == nil {
			err = releaseErr
		}
		return decision, err
	}
	decision.Slot = slot
	return decision, nil
}

// checkHeld runs the checks that need the throttle slot.
func (r *riskController) checkHeld(
	ctx context.Context,
	lead *leadDomain.Lead,
	campaign *campaignDomain.Campaign,
) (riskDomain.Decision, error) {
	today, err := r.counters.Today(ctx)
	if err != nil {
		return riskDomain.Decision{}, apperrors.Wrap(err, "failed to read daily metrics")
	}
	if today.SentCount >= campaign.DailyLimit {
		return riskDomain.Block(
			riskDomain.ReasonDailyCap,
			fmt.Sprintf("%d/%d sent on %s", today.SentCount, campaign.DailyLimit, today.Date),
		), nil
	}

	if matched, ok := campaign.MatchBlacklist(lead.EmailDomain()); ok {
		r.logger.Warn("blacklisted domain",
			slog.String("lead_id", lead.ID),
			slog.String("campaign_id", campaign.ID),
			slog.String("domain", matched),
		)
		return riskDomain.Blacklisted(matched), nil
	}

	return riskDomain.Allow(""), nil
}

func (r *riskController) throttled(ctx context.Context) (riskDomain.Decision, error) {
	left, err := r.throttle.Remaining(ctx)
	if err != nil {
		return riskDomain.Decision{}, err
	}
	if left > 0 {
		return riskDomain.Block(riskDomain.ReasonThrottled, fmt.Sprintf("next send allowed in %s", left)), nil
	}
	return riskDomain.Block(riskDomain.ReasonThrottled, "another send is in flight"), nil
}

func (r *riskController) RecordSendSuccess(ctx context.Context) error {
	if err := r.counters.Increment(ctx, dailymetricDomain.CounterSent); err != nil {
		return apperrors.Wrap(err, "failed to count send")
	}
	return r.throttle.Commit(ctx)
}

func (r *riskController) Release(ctx context.Context, slot string) error {
	return r.throttle.Release(ctx, slot)
}

// NewRiskController creates a RiskController. defaultDailyLimit applies to leads whose
// campaign does not exist.
func NewRiskController(
	campaigns CampaignGetter,
	counters DailyCounters,
	throttle Throttle,
	defaultDailyLimit int,
	logger *slog.Logger,
) RiskController {
	return &riskController{
		campaigns:         campaigns,
		counters:          counters,
		throttle:          throttle,
		defaultDailyLimit: defaultDailyLimit,
		logger:            logger,
	}
}
