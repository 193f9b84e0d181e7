package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/outreach/internal/errors"
)

// releaseScript deletes the key only while it still holds the caller's token, so an
// expired lock re-acquired by another instance is never released by the old owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every instance connected to the same Redis.
type RedisLocker struct {
	client    *redis.Client
	prefix    string
	ttl       time.Duration
	retryWait time.Duration
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed owner can keep a key.
func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:    client,
		prefix:    prefix,
		ttl:       ttl,
		retryWait: 50 * time.Millisecond,
	}
}

// Lock polls SET NX until key is free or ctx is done.
func (r *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryWait)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, apperrors.Wrapf(err, "failed to acquire lock %s", key)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.Wrapf(ErrNotAcquired, "%s: %v", key, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			err = releaseScript.Run(ctx, r.client, []string{redisKey}, token).Err()
		})
		if err != nil {
			return apperrors.Wrapf(err, "failed to release lock %s", key)
		}
		return nil
	}, nil
}
