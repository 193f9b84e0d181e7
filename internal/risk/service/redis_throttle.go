package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/allisson/outreach/internal/clock"
	apperrors "github.com/allisson/outreach/internal/errors"
)

// releaseSlotScript deletes the in-flight key only while it still holds the caller's token.
var releaseSlotScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisThrottle is a Throttle shared by every instance connected to the same Redis.
// The last send time is stored in unix milliseconds; the in-flight slot is a key with
// a TTL so a crashed holder cannot block sending forever.
type RedisThrottle struct {
	client      *redis.Client
	clock       clock.Clock
	interval    time.Duration
	inFlightTTL time.Duration
	retryWait   time.Duration
	lastKey     string
	inFlightKey string
}

// NewRedisThrottle creates a RedisThrottle. inFlightTTL should exceed the delivery timeout.
func NewRedisThrottle(
	client *redis.Client,
	clk clock.Clock,
	prefix string,
	interval, inFlightTTL time.Duration,
) *RedisThrottle {
	return &RedisThrottle{
		client:      client,
		clock:       clk,
		interval:    interval,
		inFlightTTL: inFlightTTL,
		retryWait:   50 * time.Millisecond,
		lastKey:     prefix + "throttle:last",
		inFlightKey: prefix + "throttle:inflight",
	}
}

// Reserve polls SET NX on the in-flight key until it is free or ctx is done.
func (r *RedisThrottle) Reserve(ctx context.Context) (string, bool, error) {
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryWait)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, r.inFlightKey, token, r.inFlightTTL).Result()
		if err != nil && ctx.Err() == nil {
			return "", false, apperrors.Wrap(err, "failed to reserve send slot")
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return "", false, nil
		case <-ticker.C:
		}
	}

	left, err := r.Remaining(ctx)
	if err != nil {
		_ = r.Release(context.WithoutCancel(ctx), token)
		return "", false, err
	}
	if left > 0 {
		if err := r.Release(context.WithoutCancel(ctx), token); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisThrottle) Commit(ctx context.Context) error {
	now := strconv.FormatInt(r.clock.Now().UnixMilli(), 10)
	if err := r.client.Set(ctx, r.lastKey, now, 0).Err(); err != nil {
		return apperrors.Wrap(err, "failed to store last send time")
	}
	return nil
}

func (r *RedisThrottle) Release(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseSlotScript.Run(ctx, r.client, []string{r.inFlightKey}, token).Err(); err != nil {
		return apperrors.Wrap(err, "failed to release send slot")
	}
	return nil
}

func (r *RedisThrottle) Remaining(ctx context.Context) (time.Duration, error) {
	if r.interval <= 0 {
		return 0, nil
	}

	raw, err := r.client.Get(ctx, r.lastKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read last send time")
	}

	lastMillis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.Wrapf(err, "invalid last send time %q", raw)
	}

	if left := r.interval - r.clock.Now().Sub(time.UnixMilli(lastMillis)); left > 0 {
		return left, nil
	}
	return 0, nil
}
