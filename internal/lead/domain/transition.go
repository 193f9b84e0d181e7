package domain

import "fmt"

// EventKind identifies a lifecycle event.
type EventKind string

const (
	EventEnrich EventKind = "enrich"
	EventDraft  EventKind = "draft"
	EventSend   EventKind = "send"
	EventStop   EventKind = "stop"
	EventReply  EventKind = "reply"
)

// Event is an input to Transition. Step applies to EventSend, Reason to EventStop
// and Category to EventReply.
type Event struct {
	Kind     EventKind
	Step     int
	Reason   StopReason
	Category ReplyCategory
}

// Enrich is emitted when company research is attached.
func Enrich() Event { return Event{Kind: EventEnrich} }

// Draft is emitted when a draft is generated or replaced.
func Draft() Event { return Event{Kind: EventDraft} }

// Send is emitted when the given sequence step was delivered.
func Send(step int) Event { return Event{Kind: EventSend, Step: step} }

// Stop is emitted when a lead is forced out of the pipeline.
func Stop(reason StopReason) Event { return Event{Kind: EventStop, Reason: reason} }

// Reply is emitted when a classified reply arrives.
func Reply(category ReplyCategory) Event { return Event{Kind: EventReply, Category: category} }

// Transition computes the status reached from current when ev happens to a lead
// that has already been sent sendCount times. It never mutates anything; callers
// persist the result. An error leaves the lead unchanged.
func Transition(current Status, sendCount int, ev Event) (Status, error) {
	switch ev.Kind {
	case EventEnrich:
		if current.Kind != KindNew {
			return current, fmt.Errorf("%w: enrich from %s", ErrInvalidTransition, current)
		}
		return StatusEnriched(), nil

	case EventDraft:
		if current.Kind != KindEnriched && current.Kind != KindProcessed {
			return current, fmt.Errorf("%w: draft from %s", ErrInvalidTransition, current)
		}
		return StatusProcessed(), nil

	case EventSend:
		if err := CheckSendable(current, sendCount, ev.Step); err != nil {
			return current, err
		}
		return StatusSent(ev.Step), nil

	case EventStop:
		if current.IsStopped() {
			return current, ErrLeadStopped
		}
		return StatusStopped(ev.Reason), nil

	case EventReply:
		switch ev.Category {
		case CategoryBounce:
			return StatusStopped(StopBounce), nil
		case CategoryUnsubscribe:
			return StatusStopped(StopUnsub), nil
		case CategoryInterested, CategoryNotInterested, CategoryOutOfOffice, CategoryMaybe:
			return StatusReplied(ev.Category), nil
		default:
			return current, fmt.Errorf("%w: %q", ErrInvalidCategory, ev.Category)
		}
	}

	return current, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev.Kind)
}

// CheckSendable validates that step is the next step for a lead in current status
// with sendCount deliveries. Step K can only be sent while sendCount == K.
func CheckSendable(current Status, sendCount, step int) error {
	switch current.Kind {
	case KindStopped:
		return ErrLeadStopped
	case KindReplied:
		return ErrLeadReplied
	case KindNew, KindEnriched:
		return ErrLeadNotReady
	case KindProcessed:
		if sendCount != 0 {
			return fmt.Errorf("%w: processed lead with send count %d", ErrInvalidTransition, sendCount)
		}
	case KindSent:
		if sendCount != current.Step+1 {
			return fmt.Errorf("%w: %s with send count %d", ErrInvalidTransition, current, sendCount)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, current.Kind)
	}

	switch {
	case step < sendCount:
		return fmt.Errorf("%w: step %d", ErrDuplicateSend, step)
	case step > sendCount:
		return fmt.Errorf("%w: step %d requested, next is %d", ErrStepOutOfOrder, step, sendCount)
	}
	return nil
}
