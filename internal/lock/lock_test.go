package lock

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/allisson/outreach/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locker := NewKeyedMutex()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, LeadKey("lead-1"))
			if !assert.NoError(t, err) {
				return
			}

			n := atomic.AddInt32(&inside, 1)
			for {
				current := atomic.LoadInt32(&maxInside)
				if n <= current || atomic.CompareAndSwapInt32(&maxInside, current, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)

			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locker.size())
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	locker := NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, LeadKey("a"))
	require.NoError(t, err)
	unlockB, err := locker.Lock(ctx, LeadKey("b"))
	require.NoError(t, err)

	assert.NoError(t, unlockA(ctx))
	assert.NoError(t, unlockB(ctx))
}

func TestKeyedMutex_ContextDone(t *testing.T) {
	locker := NewKeyedMutex()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, LeadKey("lead-1"))
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(waitCtx, LeadKey("lead-1"))
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, unlock(ctx))
	// double unlock is a no-op
	require.NoError(t, unlock(ctx))
	assert.Equal(t, 0, locker.size())
}

func TestRedisLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	locker := NewRedisLocker(client, "outreach:test:", time.Second)
	key := LeadKey(t.Name())

	unlock, err := locker.Lock(ctx, key)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, key)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, unlock(ctx))

	unlock, err = locker.Lock(ctx, key)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestDo(t *testing.T) {
	locker := NewKeyedMutex()
	ctx := context.Background()

	t.Run("returns fn error and releases", func(t *testing.T) {
		err := Do(ctx, locker, LeadKey("lead-1"), nil, func(context.Context) error {
			assert.Equal(t, 1, locker.size())
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, locker.size())
	})

	t.Run("fn is not called when lock is not acquired", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, LeadKey("lead-2"))
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		called := false
		err = Do(waitCtx, locker, LeadKey("lead-2"), nil, func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrNotAcquired)
		assert.False(t, called)
	})
}
