package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
	outboxDomain "github.com/allisson/outreach/internal/outbox/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	deadline bool
	err      error
}

func (f *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	_, _ bool,
	msg amqp.Publishing,
) error {
	_, f.deadline = ctx.Deadline()
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ch := &fakeChannel{}
	p := &AMQPPublisher{
		channel:  func() amqpChannel { return ch },
		exchange: "outreach.notifications",
		timeout:  time.Second,
		clock:    clock.NewFake(now),
	}

	err := p.Publish(context.Background(), Message{ID: "e1", RoutingKey: "reply.interested", Body: []byte(`{}`)})
	require.NoError(t, err)

	assert.Equal(t, "outreach.notifications", ch.exchange)
	assert.Equal(t, "reply.interested", ch.key)
	assert.Equal(t, "e1", ch.msg.MessageId)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, now, ch.msg.Timestamp)
	assert.True(t, ch.deadline)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := &AMQPPublisher{
		channel:  func() amqpChannel { return ch },
		exchange: "outreach.notifications",
		timeout:  time.Second,
		clock:    clock.System(),
	}

	err := p.Publish(context.Background(), Message{RoutingKey: "reply.received"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, p.Publish(context.Background(), Message{ID: "e1", RoutingKey: "reply.received"}))
	assert.Contains(t, buf.String(), "routing_key=reply.received")
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	event := &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: outboxDomain.EventTypeReplyInterested,
		Payload:   `{"lead_id":"l1"}`,
	}

	t.Run("publishes payload under the event type", func(t *testing.T) {
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, Message{
			ID:         event.ID.String(),
			RoutingKey: "reply.interested",
			Body:       []byte(`{"lead_id":"l1"}`),
		}).Return(nil)

		assert.NoError(t, NewProcessor(publisher, logger).Process(ctx, event))
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure", func(t *testing.T) {
		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))

		assert.EqualError(t, NewProcessor(publisher, logger).Process(ctx, event), "broker down")
	})

	t.Run("malformed payload", func(t *testing.T) {
		publisher := &mockPublisher{}
		bad := *event
		bad.Payload = "{"

		err := NewProcessor(publisher, logger).Process(ctx, &bad)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
