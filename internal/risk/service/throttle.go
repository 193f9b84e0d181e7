// Package service implements send admission control: daily cap, global throttle,
// campaign pause and domain blacklist.
package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/allisson/outreach/internal/clock"
)

// Throttle spaces successful sends by a minimum interval across all leads.
//
// Reserve waits for the single send slot until ctx is done and returns its token.
// While a slot is held no other reservation succeeds, even when spacing is disabled,
// so admission checks run after Reserve see every committed send. The holder calls
// Commit after a confirmed delivery and Release with its token once the outcome is
// persisted. Reserve reports false when ctx ends first or the interval has not elapsed.
type Throttle interface {
	Reserve(ctx context.Context) (string, bool, error)
	Commit(ctx context.Context) error
	Release(ctx context.Context, token string) error
	// Remaining returns how long until the interval since the last send elapses.
	Remaining(ctx context.Context) (time.Duration, error)
}

// MemoryThrottle is a Throttle for a single process.
type MemoryThrottle struct {
	slot     chan struct{}
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	last     time.Time
	holder   string
	seq      uint64
}

// NewMemoryThrottle creates a MemoryThrottle. A non-positive interval disables spacing
// but sends still hold the slot one at a time.
func NewMemoryThrottle(clk clock.Clock, interval time.Duration) *MemoryThrottle {
	return &MemoryThrottle{slot: make(chan struct{}, 1), clock: clk, interval: interval}
}

func (m *MemoryThrottle) Reserve(ctx context.Context) (string, bool, error) {
	select {
	case m.slot <- struct{}{}:
	case <-ctx.Done():
		return "", false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.remaining() > 0 {
		<-m.slot
		return "", false, nil
	}
	m.seq++
	m.holder = strconv.FormatUint(m.seq, 10)
	return m.holder, true, nil
}

func (m *MemoryThrottle) Commit(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = m.clock.Now()
	return nil
}

func (m *MemoryThrottle) Release(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != "" && token == m.holder {
		m.holder = ""
		<-m.slot
	}
	return nil
}

func (m *MemoryThrottle) Remaining(context.Context) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining(), nil
}

func (m *MemoryThrottle) remaining() time.Duration {
	if m.interval <= 0 || m.last.IsZero() {
		return 0
	}
	if left := m.interval - m.clock.Now().Sub(m.last); left > 0 {
		return left
	}
	return 0
}
