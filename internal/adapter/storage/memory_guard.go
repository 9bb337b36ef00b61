package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type lease struct {
	token     string
	expiresAt time.Time
}

// MemoryGuard is the in-process CycleGuard used when Redis is not configured.
type MemoryGuard struct {
	mu    sync.Mutex
	locks map[string]lease
	seen  map[string]time.Time
	now   func() time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		locks: make(map[string]lease),
		seen:  make(map[string]time.Time),
		now:   time.Now,
	}
}

func (m *MemoryGuard) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if l, ok := m.locks[key]; ok && now.Before(l.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	m.locks[key] = lease{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (m *MemoryGuard) ReleaseLock(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.locks[key]; ok && l.token == token {
		delete(m.locks, key)
	}
	return nil
}

func (m *MemoryGuard) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if at, ok := m.seen[key]; ok && now.Sub(at) < idempotencyKeyTTL {
		return false, nil
	}
	m.seen[key] = now
	return true, nil
}

func (m *MemoryGuard) ClearIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.seen, key)
	return nil
}
