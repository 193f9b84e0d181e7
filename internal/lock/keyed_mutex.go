package lock

import (
	"context"
	"sync"

	apperrors "github.com/allisson/outreach/internal/errors"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex is an in-process Locker. Slots are reference counted and removed once no
// caller holds or waits on them.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]*slot)}
}

// Lock blocks until key is free or ctx is done.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (Unlock, error) {
	k.mu.Lock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	k.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, s)
		return nil, apperrors.Wrapf(ErrNotAcquired, "%s: %v", key, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			k.release(key, s)
		})
		return nil
	}, nil
}

func (k *KeyedMutex) release(key string, s *slot) {
	k.mu.Lock()
	defer k.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(k.slots, key)
	}
}

// size returns the number of live slots.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
