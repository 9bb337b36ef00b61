package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryGuard_Lock(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	token, ok, err := guard.AcquireLock(ctx, "sheet", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, got ok=%v err=%v", ok, err)
	}

	if _, ok, _ := guard.AcquireLock(ctx, "sheet", time.Minute); ok {
		t.Error("expected second acquire to fail while held")
	}

	// A stale token must not release the current holder
	if err := guard.ReleaseLock(ctx, "sheet", "someone-else"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := guard.AcquireLock(ctx, "sheet", time.Minute); ok {
		t.Error("expected lock still held after foreign release")
	}

	if err := guard.ReleaseLock(ctx, "sheet", token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := guard.AcquireLock(ctx, "sheet", time.Minute); !ok {
		t.Error("expected acquire to succeed after release")
	}
}

func TestMemoryGuard_LockExpires(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	if _, ok, _ := guard.AcquireLock(ctx, "sheet", 5*time.Second); !ok {
		t.Fatal("expected acquire to succeed")
	}

	now = now.Add(6 * time.Second)
	if _, ok, _ := guard.AcquireLock(ctx, "sheet", 5*time.Second); !ok {
		t.Error("expected expired lock to be taken over")
	}
}

func TestMemoryGuard_Idempotency(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	if ok, _ := guard.SetIdempotency(ctx, "movement:req-1"); !ok {
		t.Fatal("expected first call to succeed")
	}
	if ok, _ := guard.SetIdempotency(ctx, "movement:req-1"); ok {
		t.Error("expected second call to fail")
	}

	if err := guard.ClearIdempotency(ctx, "movement:req-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := guard.SetIdempotency(ctx, "movement:req-1"); !ok {
		t.Error("expected call after clear to succeed")
	}
}

func TestMemoryGuard_ConcurrentLock(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := guard.AcquireLock(ctx, "sheet", time.Minute); ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
}
