package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotLocker serializes booking commits per (companyID, date). A booking
// attempt either acquires the key promptly or fails fast; there is no
// indefinite blocking.
type SlotLocker interface {
	Acquire(ctx context.Context, companyID, date string) (release func(), err error)
}

func lockKey(companyID, date string) string {
	return fmt.Sprintf("booking-lock:%s:%s", companyID, date)
}

// RedisSlotLocker implements SlotLocker with SET NX and a TTL, so a crashed
// instance cannot hold a day locked forever.
type RedisSlotLocker struct {
	Client *redis.Client
	// TTL bounds how long a commit may hold the key. Defaults to 10s.
	TTL time.Duration
	// WaitTimeout bounds how long Acquire polls for a held key. Defaults to 2s.
	WaitTimeout time.Duration
}

func (l *RedisSlotLocker) ttl() time.Duration {
	if l.TTL > 0 {
		return l.TTL
	}
	return 10 * time.Second
}

func (l *RedisSlotLocker) waitTimeout() time.Duration {
	if l.WaitTimeout > 0 {
		return l.WaitTimeout
	}
	return 2 * time.Second
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, companyID, date string) (func(), error) {
	key := lockKey(companyID, date)
	deadline := time.Now().Add(l.waitTimeout())

	for {
		ok, err := l.Client.SetNX(ctx, key, "1", l.ttl()).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire booking lock %s: %w", key, err)
		}
		if ok {
			return func() {
				_ = l.Client.Del(context.Background(), key).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("booking lock %s is held", key)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// MemoryLocker is an in-process SlotLocker for single-instance deployments
// and tests.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, companyID, date string) (func(), error) {
	key := lockKey(companyID, date)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
