package listener

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/outreach/internal/clock"
)

// Deduplicator remembers inbound message ids that were already applied.
type Deduplicator interface {
	// Claim records messageID and reports false when it was already claimed.
	Claim(ctx context.Context, messageID string) (bool, error)
	// Forget drops a claim so a redelivered message is processed again.
	Forget(ctx context.Context, messageID string) error
}

// MemoryDeduplicator keeps claims in process memory for ttl.
type MemoryDeduplicator struct {
	mu     sync.Mutex
	clock  clock.Clock
	ttl    time.Duration
	claims map[string]time.Time
}

// NewMemoryDeduplicator creates a MemoryDeduplicator.
func NewMemoryDeduplicator(clk clock.Clock, ttl time.Duration) *MemoryDeduplicator {
	return &MemoryDeduplicator{
		clock:  clk,
		ttl:    ttl,
		claims: make(map[string]time.Time),
	}
}

func (d *MemoryDeduplicator) Claim(_ context.Context, messageID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	for id, expires := range d.claims {
		if !now.Before(expires) {
			delete(d.claims, id)
		}
	}

	if _, ok := d.claims[messageID]; ok {
		return false, nil
	}
	d.claims[messageID] = now.Add(d.ttl)
	return true, nil
}

func (d *MemoryDeduplicator) Forget(_ context.Context, messageID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.claims, messageID)
	return nil
}

// RedisDeduplicator shares claims between listener instances through SET NX.
type RedisDeduplicator struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDeduplicator creates a RedisDeduplicator.
func NewRedisDeduplicator(client *redis.Client, prefix string, ttl time.Duration) *RedisDeduplicator {
	return &RedisDeduplicator{client: client, prefix: prefix, ttl: ttl}
}

func (d *RedisDeduplicator) key(messageID string) string {
	return d.prefix + "reply:" + messageID
}

func (d *RedisDeduplicator) Claim(ctx context.Context, messageID string) (bool, error) {
	return d.client.SetNX(ctx, d.key(messageID), 1, d.ttl).Result()
}

func (d *RedisDeduplicator) Forget(ctx context.Context, messageID string) error {
	return d.client.Del(ctx, d.key(messageID)).Err()
}
