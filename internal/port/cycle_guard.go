package port

import (
	"context"
	"time"
)

type CycleGuard interface {
	// AcquireLock takes the sheet lock for ttl, returns false if someone else holds it
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// ReleaseLock frees the lock only if token still owns it
	ReleaseLock(ctx context.Context, key, token string) error

	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ClearIdempotency forgets a key so a failed request can be retried
	ClearIdempotency(ctx context.Context, key string) error
}
