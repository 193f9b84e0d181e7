package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/outreach/internal/errors"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   Status
		sendCount int
		event     Event
		want      Status
		wantErr   error
	}{
		{"enrich new", StatusNew(), 0, Enrich(), StatusEnriched(), nil},
		{"enrich twice", StatusEnriched(), 0, Enrich(), StatusEnriched(), ErrInvalidTransition},
		{"draft enriched", StatusEnriched(), 0, Draft(), StatusProcessed(), nil},
		{"redraft processed", StatusProcessed(), 0, Draft(), StatusProcessed(), nil},
		{"draft new", StatusNew(), 0, Draft(), StatusNew(), ErrInvalidTransition},
		{"first send", StatusProcessed(), 0, Send(0), StatusSent(0), nil},
		{"follow up", StatusSent(0), 1, Send(1), StatusSent(1), nil},
		{"duplicate step", StatusSent(0), 1, Send(0), StatusSent(0), ErrDuplicateSend},
		{"skipped step", StatusSent(0), 1, Send(2), StatusSent(0), ErrStepOutOfOrder},
		{"send new", StatusNew(), 0, Send(0), StatusNew(), ErrLeadNotReady},
		{"send enriched", StatusEnriched(), 0, Send(0), StatusEnriched(), ErrLeadNotReady},
		{"send stopped", StatusStopped(StopBlacklist), 0, Send(0), StatusStopped(StopBlacklist), ErrLeadStopped},
		{"send replied", StatusReplied(CategoryMaybe), 1, Send(1), StatusReplied(CategoryMaybe), ErrLeadReplied},
		{"inconsistent processed", StatusProcessed(), 2, Send(2), StatusProcessed(), ErrInvalidTransition},
		{"inconsistent sent", StatusSent(0), 3, Send(3), StatusSent(0), ErrInvalidTransition},
		{"blacklist stop", StatusProcessed(), 0, Stop(StopBlacklist), StatusStopped(StopBlacklist), nil},
		{"stop replied", StatusReplied(CategoryMaybe), 1, Stop(StopManual), StatusStopped(StopManual), nil},
		{"stop stopped", StatusStopped(StopBounce), 1, Stop(StopManual), StatusStopped(StopBounce), ErrLeadStopped},
		{"reply bounce", StatusSent(0), 1, Reply(CategoryBounce), StatusStopped(StopBounce), nil},
		{"reply unsubscribe", StatusSent(2), 3, Reply(CategoryUnsubscribe), StatusStopped(StopUnsub), nil},
		{"reply interested", StatusSent(0), 1, Reply(CategoryInterested), StatusReplied(CategoryInterested), nil},
		{"reply not interested", StatusSent(0), 1, Reply(CategoryNotInterested), StatusReplied(CategoryNotInterested), nil},
		{"reply on stopped lead", StatusStopped(StopBlacklist), 0, Reply(CategoryOutOfOffice), StatusReplied(CategoryOutOfOffice), nil},
		{"reply unknown category", StatusSent(0), 1, Reply("spam"), StatusSent(0), ErrInvalidCategory},
		{"unknown event", StatusNew(), 0, Event{Kind: "teleport"}, StatusNew(), ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.sendCount, tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransition_SendErrorsAreInvalidState(t *testing.T) {
	for _, ev := range []struct {
		status    Status
		sendCount int
		step      int
	}{
		{StatusStopped(StopUnsub), 1, 1},
		{StatusSent(0), 1, 0},
		{StatusNew(), 0, 0},
	} {
		_, err := Transition(ev.status, ev.sendCount, Send(ev.step))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidState), "status %s", ev.status)
	}
}

func TestLead_MarkSent(t *testing.T) {
	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lead := &Lead{ID: "lead-1", Status: StatusProcessed()}

	require.NoError(t, lead.MarkSent(0, "msg-1", first))
	assert.Equal(t, StatusSent(0), lead.Status)
	assert.Equal(t, 1, lead.SendCount)
	assert.Equal(t, "msg-1", lead.LastMessageID)
	assert.Equal(t, "th_lead-1_1773133200", lead.ThreadID)
	assert.Equal(t, first, *lead.LastSentAt)

	second := first.Add(48 * time.Hour)
	require.NoError(t, lead.MarkSent(1, "msg-2", second))
	assert.Equal(t, StatusSent(1), lead.Status)
	assert.Equal(t, 2, lead.SendCount)
	assert.Equal(t, "th_lead-1_1773133200", lead.ThreadID, "thread id is stable across the sequence")

	err := lead.MarkSent(1, "msg-3", second)
	assert.ErrorIs(t, err, ErrDuplicateSend)
	assert.Equal(t, 2, lead.SendCount)
	assert.Equal(t, "msg-2", lead.LastMessageID)
}

func TestLead_ApplyDraft(t *testing.T) {
	lead := &Lead{Subject: "Hello", Body: "Body"}
	subject := "Hi there"
	same := "Body"

	assert.True(t, lead.ApplyDraft(&subject, nil))
	assert.Equal(t, "Hi there", lead.Subject)
	assert.False(t, lead.ApplyDraft(nil, &same))
	assert.False(t, lead.ApplyDraft(nil, nil))
}

func TestLead_EmailDomain(t *testing.T) {
	assert.Equal(t, "spam.biz", (&Lead{Email: "bob@Spam.BIZ"}).EmailDomain())
	assert.Equal(t, "", (&Lead{Email: ""}).EmailDomain())
	assert.Equal(t, "", (&Lead{Email: "bob@"}).EmailDomain())
	assert.Equal(t, "", (&Lead{Email: "nobody"}).EmailDomain())
}

func TestLead_Apply(t *testing.T) {
	now := time.Now().UTC()
	lead := &Lead{Status: StatusNew()}

	require.NoError(t, lead.Apply(Enrich(), now))
	assert.Equal(t, StatusEnriched(), lead.Status)
	assert.Equal(t, now, lead.UpdatedAt)

	err := lead.Apply(Send(0), now)
	assert.ErrorIs(t, err, ErrLeadNotReady)
	assert.Equal(t, StatusEnriched(), lead.Status)
}
