package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// StatusKind is the lifecycle stage of a lead.
type StatusKind string

const (
	KindNew       StatusKind = "new"
	KindEnriched  StatusKind = "enriched"
	KindProcessed StatusKind = "processed"
	KindSent      StatusKind = "sent"
	KindReplied   StatusKind = "replied"
	KindStopped   StatusKind = "stopped"
)

// ReplyCategory is the fixed set of classifications an inbound reply can carry.
type ReplyCategory string

const (
	CategoryInterested    ReplyCategory = "interested"
	CategoryNotInterested ReplyCategory = "not_interested"
	CategoryOutOfOffice   ReplyCategory = "out_of_office"
	CategoryMaybe         ReplyCategory = "maybe"
	CategoryBounce        ReplyCategory = "bounce"
	CategoryUnsubscribe   ReplyCategory = "unsubscribe"
)

// ReplyCategories lists every valid classification.
var ReplyCategories = []ReplyCategory{
	CategoryInterested,
	CategoryNotInterested,
	CategoryOutOfOffice,
	CategoryMaybe,
	CategoryBounce,
	CategoryUnsubscribe,
}

// StopReason explains why a lead left the sending pipeline for good.
type StopReason string

const (
	StopBlacklist StopReason = "blacklist"
	StopBounce    StopReason = "bounce"
	StopUnsub     StopReason = "unsub"
	StopManual    StopReason = "manual"
)

// Status is a closed variant: Step is meaningful only for KindSent, Category only for
// KindReplied and Reason only for KindStopped. Build values with the constructors below.
type Status struct {
	Kind     StatusKind
	Step     int
	Category ReplyCategory
	Reason   StopReason
}

// StatusNew is the status of a freshly ingested lead.
func StatusNew() Status { return Status{Kind: KindNew} }

// StatusEnriched is the status after company research was attached.
func StatusEnriched() Status { return Status{Kind: KindEnriched} }

// StatusProcessed is the status once a draft is ready for approval.
func StatusProcessed() Status { return Status{Kind: KindProcessed} }

// StatusSent is the status after the given zero-based sequence step was delivered.
func StatusSent(step int) Status { return Status{Kind: KindSent, Step: step} }

// StatusReplied is the status after a non-terminal reply was classified.
func StatusReplied(category ReplyCategory) Status {
	return Status{Kind: KindReplied, Category: category}
}

// StatusStopped is the status of a lead that must never be contacted again.
func StatusStopped(reason StopReason) Status {
	return Status{Kind: KindStopped, Reason: reason}
}

// String renders the persisted form: new, enriched, processed, sent_step{N},
// replied_{category} or stopped_{reason}.
func (s Status) String() string {
	switch s.Kind {
	case KindSent:
		return "sent_step" + strconv.Itoa(s.Step)
	case KindReplied:
		return "replied_" + string(s.Category)
	case KindStopped:
		return "stopped_" + string(s.Reason)
	default:
		return string(s.Kind)
	}
}

// IsStopped reports whether the lead was stopped for any reason.
func (s Status) IsStopped() bool { return s.Kind == KindStopped }

// IsReplied reports whether the lead replied.
func (s Status) IsReplied() bool { return s.Kind == KindReplied }

// IsTerminal reports whether no further sending is allowed.
func (s Status) IsTerminal() bool { return s.IsStopped() || s.IsReplied() }

// ParseStatus parses the persisted form produced by String.
func ParseStatus(raw string) (Status, error) {
	switch raw {
	case string(KindNew):
		return StatusNew(), nil
	case string(KindEnriched):
		return StatusEnriched(), nil
	case string(KindProcessed):
		return StatusProcessed(), nil
	}

	switch {
	case strings.HasPrefix(raw, "sent_step"):
		step, err := strconv.Atoi(strings.TrimPrefix(raw, "sent_step"))
		if err != nil || step < 0 {
			return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
		return StatusSent(step), nil
	case strings.HasPrefix(raw, "replied_"):
		category := ReplyCategory(strings.TrimPrefix(raw, "replied_"))
		switch category {
		case CategoryInterested, CategoryNotInterested, CategoryOutOfOffice, CategoryMaybe:
			return StatusReplied(category), nil
		}
	case strings.HasPrefix(raw, "stopped_"):
		reason := StopReason(strings.TrimPrefix(raw, "stopped_"))
		switch reason {
		case StopBlacklist, StopBounce, StopUnsub, StopManual:
			return StatusStopped(reason), nil
		}
	}

	return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// NormalizeCategory maps a raw classifier label onto the fixed category set.
// Labels mentioning a bounce, an unsubscribe or a removal request are folded into
// CategoryBounce and CategoryUnsubscribe; every other label must match exactly.
func NormalizeCategory(raw string) (ReplyCategory, error) {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.NewReplacer(" ", "_", "-", "_").Replace(label)

	switch {
	case label == "":
		return "", fmt.Errorf("%w: empty classification", ErrInvalidCategory)
	case strings.Contains(label, "bounce"):
		return CategoryBounce, nil
	case strings.Contains(label, "unsubscribe"), strings.Contains(label, "remove"):
		return CategoryUnsubscribe, nil
	}

	for _, category := range ReplyCategories {
		if label == string(category) {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}
