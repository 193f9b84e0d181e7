// Package domain defines the per-day outreach counters.
package domain

import (
	"time"

	"github.com/allisson/outreach/internal/errors"
)

// DateLayout is the key format of a daily metric row.
const DateLayout = "2006-01-02"

// Counter names one field of a daily metric row.
type Counter string

const (
	CounterSent     Counter = "sent_count"
	CounterReply    Counter = "reply_count"
	CounterPositive Counter = "positive_count"
	CounterBounce   Counter = "bounce_count"
)

// ErrUnknownCounter indicates an increment for a field that does not exist.
var ErrUnknownCounter = errors.Wrap(errors.ErrInvalidInput, "unknown metric counter")

// Valid reports whether c is one of the known counters.
func (c Counter) Valid() bool {
	switch c {
	case CounterSent, CounterReply, CounterPositive, CounterBounce:
		return true
	}
	return false
}

// DailyMetric holds monotonic counters for one calendar date.
type DailyMetric struct {
	Date          string
	SentCount     int
	ReplyCount    int
	PositiveCount int
	BounceCount   int
}

// DateKey formats t in its own location as a daily metric key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Empty returns a zeroed row for date, used when nothing was recorded yet.
func Empty(date string) *DailyMetric {
	return &DailyMetric{Date: date}
}
