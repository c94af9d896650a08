package security

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCounterStoreFixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	store := NewMemoryCounterStore()
	store.Now = func() time.Time { return now }

	// Three increments inside the window accumulate.
	for i := int64(1); i <= 3; i++ {
		n, err := store.Incr(ctx, "login_attempts:a@b.c", 30*time.Minute)
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if n != i {
			t.Fatalf("Incr #%d = %d, want %d", i, n, i)
		}
	}

	// The window is fixed from the first increment: 29 minutes later the
	// count still stands.
	now = now.Add(29 * time.Minute)
	if n, _ := store.Get(ctx, "login_attempts:a@b.c"); n != 3 {
		t.Fatalf("Get before expiry = %d, want 3", n)
	}

	// Past the boundary the counter restarts at 1.
	now = now.Add(2 * time.Minute)
	if n, _ := store.Get(ctx, "login_attempts:a@b.c"); n != 0 {
		t.Fatalf("Get after expiry = %d, want 0", n)
	}
	if n, _ := store.Incr(ctx, "login_attempts:a@b.c", 30*time.Minute); n != 1 {
		t.Fatalf("Incr after expiry = %d, want 1", n)
	}
}

func TestMemoryCounterStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCounterStore()

	store.Incr(ctx, "k", time.Minute)
	store.Incr(ctx, "k", time.Minute)
	if err := store.Reset(ctx, "k"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if n, _ := store.Get(ctx, "k"); n != 0 {
		t.Fatalf("Get after Reset = %d, want 0", n)
	}
}

func TestMemoryCounterStoreIndependentKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCounterStore()

	store.Incr(ctx, "ip:1.2.3.4", time.Minute)
	store.Incr(ctx, "ip:1.2.3.4", time.Minute)
	store.Incr(ctx, "ip:5.6.7.8", time.Minute)

	if n, _ := store.Get(ctx, "ip:1.2.3.4"); n != 2 {
		t.Errorf("first key = %d, want 2", n)
	}
	if n, _ := store.Get(ctx, "ip:5.6.7.8"); n != 1 {
		t.Errorf("second key = %d, want 1", n)
	}
}
