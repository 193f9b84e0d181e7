package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/outreach/internal/errors"
)

func TestStatus_StringRoundTrip(t *testing.T) {
	statuses := []Status{
		StatusNew(),
		StatusEnriched(),
		StatusProcessed(),
		StatusSent(0),
		StatusSent(3),
		StatusReplied(CategoryInterested),
		StatusReplied(CategoryNotInterested),
		StatusReplied(CategoryOutOfOffice),
		StatusReplied(CategoryMaybe),
		StatusStopped(StopBlacklist),
		StatusStopped(StopBounce),
		StatusStopped(StopUnsub),
		StatusStopped(StopManual),
	}

	for _, status := range statuses {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := ParseStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "new", StatusNew().String())
	assert.Equal(t, "sent_step2", StatusSent(2).String())
	assert.Equal(t, "replied_interested", StatusReplied(CategoryInterested).String())
	assert.Equal(t, "stopped_blacklist", StatusStopped(StopBlacklist).String())
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "sent", "sent_step", "sent_step-1", "sent_stepx", "replied_bounce", "stopped_", "stopped_whatever", "NEW"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseStatus(raw)
			assert.ErrorIs(t, err, ErrInvalidStatus)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, StatusStopped(StopManual).IsStopped())
	assert.True(t, StatusStopped(StopManual).IsTerminal())
	assert.True(t, StatusReplied(CategoryMaybe).IsReplied())
	assert.True(t, StatusReplied(CategoryMaybe).IsTerminal())
	assert.False(t, StatusSent(1).IsTerminal())
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want ReplyCategory
	}{
		{"interested", CategoryInterested},
		{" Interested ", CategoryInterested},
		{"not interested", CategoryNotInterested},
		{"not_interested", CategoryNotInterested},
		{"out-of-office", CategoryOutOfOffice},
		{"maybe", CategoryMaybe},
		{"bounce", CategoryBounce},
		{"hard_bounce", CategoryBounce},
		{"unsubscribe", CategoryUnsubscribe},
		{"please remove me", CategoryUnsubscribe},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeCategory(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, raw := range []string{"", "   ", "spam", "very interested"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := NormalizeCategory(raw)
			assert.ErrorIs(t, err, ErrInvalidCategory)
		})
	}
}
