// Package lock serializes mutations of a single lead across concurrent callers.
//
// Two implementations exist: KeyedMutex for a single process and RedisLocker when
// several instances share the same database. Both block until the key is free or the
// context is done.
package lock

import (
	"context"
	"log/slog"

	apperrors "github.com/allisson/outreach/internal/errors"
)

// ErrNotAcquired indicates the lock could not be taken before the context ended.
var ErrNotAcquired = apperrors.Wrap(apperrors.ErrConflict, "lock not acquired")

// Unlock releases a held lock. Calling it more than once is a no-op.
type Unlock func(ctx context.Context) error

// Locker acquires exclusive ownership of a key.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// LeadKey is the lock key of a lead.
func LeadKey(leadID string) string {
	return "lead:" + leadID
}

// Do runs fn while holding key. A failed release is logged and does not override the
// result of fn; a Redis lock left behind expires with its TTL.
func Do(ctx context.Context, locker Locker, key string, logger *slog.Logger, fn func(ctx context.Context) error) error {
	unlock, err := locker.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil && logger != nil {
			logger.Warn("failed to release lock", slog.String("key", key), slog.Any("error", err))
		}
	}()

	return fn(ctx)
}
