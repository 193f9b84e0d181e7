package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/outreach/internal/clock"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	replyDomain "github.com/allisson/outreach/internal/reply/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacks++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(uint64, bool) error { return nil }

type mockReplyApplier struct {
	mock.Mock
}

func (m *mockReplyApplier) ApplyClassifiedReply(
	ctx context.Context,
	reply *replyDomain.Reply,
) (leadDomain.Status, error) {
	args := m.Called(ctx, reply)
	return args.Get(0).(leadDomain.Status), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func delivery(ack amqp.Acknowledger, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body), MessageId: "amqp-1"}
}

const validBody = `{"message_id":"in-1","lead_id":"l1","content":"yes","classification":"interested",` +
	`"received_at":"2026-03-10T09:00:00Z"}`

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()
	matchReply := mock.MatchedBy(func(r *replyDomain.Reply) bool {
		return r.MessageID == "in-1" && r.LeadID == "l1" && r.Classification == "interested" &&
			r.ReceivedAt.Equal(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	})

	tests := []struct {
		name      string
		err       error
		wantAcks  int
		wantNacks int
		reclaims  bool
	}{
		{"applied", nil, 1, 0, false},
		{"unknown lead", leadDomain.ErrLeadNotFound, 1, 0, false},
		{"invalid classification", leadDomain.ErrInvalidCategory, 1, 0, false},
		{"storage failure", errors.New("db down"), 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &mockReplyApplier{}
			applier.On("ApplyClassifiedReply", mock.Anything, matchReply).
				Return(leadDomain.StatusReplied(leadDomain.CategoryInterested), tt.err)
			dedup := NewMemoryDeduplicator(clock.System(), time.Hour)
			ack := &fakeAcknowledger{}

			NewHandler(applier, dedup, time.Second, discardLogger()).Handle(ctx, delivery(ack, validBody))

			assert.Equal(t, tt.wantAcks, ack.acks)
			assert.Equal(t, tt.wantNacks, ack.nacks)
			assert.False(t, ack.requeue)

			claimed, err := dedup.Claim(ctx, "in-1")
			require.NoError(t, err)
			assert.Equal(t, tt.reclaims, claimed)
			applier.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_Duplicate(t *testing.T) {
	ctx := context.Background()
	applier := &mockReplyApplier{}
	applier.On("ApplyClassifiedReply", mock.Anything, mock.Anything).
		Return(leadDomain.StatusReplied(leadDomain.CategoryInterested), nil).Once()
	handler := NewHandler(applier, NewMemoryDeduplicator(clock.System(), time.Hour), time.Second, discardLogger())

	first, second := &fakeAcknowledger{}, &fakeAcknowledger{}
	handler.Handle(ctx, delivery(first, validBody))
	handler.Handle(ctx, delivery(second, validBody))

	assert.Equal(t, 1, first.acks)
	assert.Equal(t, 1, second.acks)
	applier.AssertNumberOfCalls(t, "ApplyClassifiedReply", 1)
}

func TestHandler_Handle_Malformed(t *testing.T) {
	applier := &mockReplyApplier{}
	ack := &fakeAcknowledger{}

	NewHandler(applier, NewMemoryDeduplicator(clock.System(), time.Hour), time.Second, discardLogger()).
		Handle(context.Background(), delivery(ack, "not json"))

	assert.Equal(t, 1, ack.acks)
	applier.AssertNotCalled(t, "ApplyClassifiedReply", mock.Anything, mock.Anything)
}

func TestHandler_Handle_FallsBackToDeliveryMessageID(t *testing.T) {
	applier := &mockReplyApplier{}
	applier.On("ApplyClassifiedReply", mock.Anything, mock.MatchedBy(func(r *replyDomain.Reply) bool {
		return r.MessageID == "amqp-1"
	})).Return(leadDomain.StatusReplied(leadDomain.CategoryMaybe), nil)
	ack := &fakeAcknowledger{}

	NewHandler(applier, NewMemoryDeduplicator(clock.System(), time.Hour), time.Second, discardLogger()).
		Handle(context.Background(), delivery(ack, `{"lead_id":"l1","classification":"maybe"}`))

	assert.Equal(t, 1, ack.acks)
	applier.AssertExpectations(t)
}

func TestMemoryDeduplicator_Expiry(t *testing.T) {
	ctx := context.Background()
	fake := clock.NewFake(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	dedup := NewMemoryDeduplicator(fake, time.Hour)

	claimed, err := dedup.Claim(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, _ = dedup.Claim(ctx, "m1")
	assert.False(t, claimed)

	fake.Advance(time.Hour)
	claimed, _ = dedup.Claim(ctx, "m1")
	assert.True(t, claimed)

	require.NoError(t, dedup.Forget(ctx, "m1"))
	claimed, _ = dedup.Claim(ctx, "m1")
	assert.True(t, claimed)
}

func TestRedisDeduplicator(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	dedup := NewRedisDeduplicator(client, "outreach:test:", time.Minute)
	id := "m-" + time.Now().Format(time.RFC3339Nano)
	defer func() { _ = dedup.Forget(ctx, id) }()

	claimed, err := dedup.Claim(ctx, id)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = dedup.Claim(ctx, id)
	require.NoError(t, err)
	assert.False(t, claimed)
}

type fakeConsumeChannel struct {
	deliveries chan amqp.Delivery
	prefetch   int
}

func (f *fakeConsumeChannel) Qos(prefetchCount, _ int, _ bool) error {
	f.prefetch = prefetchCount
	return nil
}

func (f *fakeConsumeChannel) Consume(
	string, string, bool, bool, bool, bool, amqp.Table,
) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func TestConsumer_Consume(t *testing.T) {
	applier := &mockReplyApplier{}
	applier.On("ApplyClassifiedReply", mock.Anything, mock.Anything).
		Return(leadDomain.StatusReplied(leadDomain.CategoryInterested), nil)
	handler := NewHandler(applier, NewMemoryDeduplicator(clock.System(), time.Hour), time.Second, discardLogger())

	ch := &fakeConsumeChannel{deliveries: make(chan amqp.Delivery, 1)}
	consumer := &Consumer{channel: ch, handler: handler, logger: discardLogger()}

	ack := &fakeAcknowledger{}
	ch.deliveries <- delivery(ack, validBody)
	close(ch.deliveries)

	err := consumer.Consume(context.Background(), "outreach.replies")
	assert.ErrorContains(t, err, "closed")
	assert.Equal(t, 1, ch.prefetch)
	assert.Equal(t, 1, ack.acks)
}

func TestConsumer_Consume_Cancelled(t *testing.T) {
	ch := &fakeConsumeChannel{deliveries: make(chan amqp.Delivery)}
	consumer := &Consumer{channel: ch, handler: NewHandler(&mockReplyApplier{}, nil, 0, discardLogger()),
		logger: discardLogger()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, consumer.Consume(ctx, "outreach.replies"), context.Canceled)
}
