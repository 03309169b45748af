package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, limit int) *LoginThrottle {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, limit, time.Minute)
}

func TestLoginThrottle_BlocksAtLimit(t *testing.T) {
	throttle := newTestThrottle(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if blocked, err := throttle.TooMany(ctx, "alice@example.com"); err != nil || blocked {
			t.Fatalf("attempt %d: blocked=%v err=%v", i, blocked, err)
		}
		if err := throttle.Fail(ctx, "alice@example.com"); err != nil {
			t.Fatalf("Fail returned error: %v", err)
		}
	}

	blocked, err := throttle.TooMany(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("TooMany returned error: %v", err)
	}
	if !blocked {
		t.Fatalf("expected account blocked after limit failures")
	}

	// The key is case-insensitive on the email.
	if blocked, _ := throttle.TooMany(ctx, "ALICE@example.com"); !blocked {
		t.Fatalf("throttle must not be bypassed by case changes")
	}

	// Other accounts are unaffected.
	if blocked, _ := throttle.TooMany(ctx, "bob@example.com"); blocked {
		t.Fatalf("unrelated account must not be blocked")
	}
}

func TestLoginThrottle_ResetClearsCounter(t *testing.T) {
	throttle := newTestThrottle(t, 1)
	ctx := context.Background()

	if err := throttle.Fail(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Fail returned error: %v", err)
	}
	if blocked, _ := throttle.TooMany(ctx, "alice@example.com"); !blocked {
		t.Fatalf("expected blocked")
	}
	if err := throttle.Reset(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if blocked, _ := throttle.TooMany(ctx, "alice@example.com"); blocked {
		t.Fatalf("expected counter cleared after reset")
	}
}
