package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	event, err := NewOutboxEvent(EventTypeReplyInterested, map[string]string{"lead_id": "l1"}, now)
	require.NoError(t, err)

	assert.Equal(t, EventTypeReplyInterested, event.EventType)
	assert.Equal(t, `{"lead_id":"l1"}`, event.Payload)
	assert.Equal(t, OutboxEventStatusPending, event.Status)
	assert.Equal(t, now, event.CreatedAt)
	assert.NotEqual(t, [16]byte{}, [16]byte(event.ID))
}

func TestNewOutboxEvent_Unencodable(t *testing.T) {
	_, err := NewOutboxEvent(EventTypeReplyReceived, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestOutboxEvent_MarkFailed(t *testing.T) {
	now := time.Now()
	event := &OutboxEvent{Status: OutboxEventStatusPending}

	event.MarkFailed(errors.New("broker down"), 2, now)
	assert.Equal(t, 1, event.Retries)
	assert.Equal(t, OutboxEventStatusPending, event.Status)
	require.NotNil(t, event.LastError)
	assert.Equal(t, "broker down", *event.LastError)

	event.MarkFailed(errors.New("broker down"), 2, now)
	assert.Equal(t, OutboxEventStatusFailed, event.Status)
}

func TestOutboxEvent_MarkProcessed(t *testing.T) {
	now := time.Now()
	event := &OutboxEvent{Status: OutboxEventStatusPending}

	event.MarkProcessed(now)
	assert.Equal(t, OutboxEventStatusProcessed, event.Status)
	require.NotNil(t, event.ProcessedAt)
	assert.Equal(t, now, *event.ProcessedAt)
}
