package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

func TestCounters(t *testing.T) {
	tests := []struct {
		category leadDomain.ReplyCategory
		want     []dailymetricDomain.Counter
	}{
		{leadDomain.CategoryBounce, []dailymetricDomain.Counter{dailymetricDomain.CounterBounce}},
		{leadDomain.CategoryUnsubscribe, nil},
		{
			leadDomain.CategoryInterested,
			[]dailymetricDomain.Counter{dailymetricDomain.CounterPositive, dailymetricDomain.CounterReply},
		},
		{leadDomain.CategoryNotInterested, []dailymetricDomain.Counter{dailymetricDomain.CounterReply}},
		{leadDomain.CategoryOutOfOffice, []dailymetricDomain.Counter{dailymetricDomain.CounterReply}},
		{leadDomain.CategoryMaybe, []dailymetricDomain.Counter{dailymetricDomain.CounterReply}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, Counters(tt.category))
		})
	}
}

func TestReply_Validate(t *testing.T) {
	assert.NoError(t, (&Reply{LeadID: "l1"}).Validate())

	err := (&Reply{LeadID: "  "}).Validate()
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "hello", Excerpt("  hello \n", 10))
	assert.Equal(t, "héll", Excerpt("héllo world", 4))
}

func TestNewNotification(t *testing.T) {
	received := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	lead := &leadDomain.Lead{
		ID:          "l1",
		Name:        "Ada",
		CompanyName: "Acme",
		Email:       "ada@acme.io",
		CampaignID:  "default",
		Status:      leadDomain.StatusReplied(leadDomain.CategoryInterested),
	}
	reply := &Reply{MessageID: "m1", LeadID: "l1", Content: "Let's talk", ReceivedAt: received}

	n := NewNotification(lead, reply, leadDomain.CategoryInterested)

	assert.Equal(t, "replied_interested", n.Status)
	assert.Equal(t, "interested", n.Classification)
	assert.Equal(t, "Let's talk", n.Excerpt)
	assert.Equal(t, "m1", n.MessageID)
	assert.Equal(t, received, n.ReceivedAt)
}
