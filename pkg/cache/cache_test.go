package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// testBackends are the backends that need no external service.
func testBackends(t *testing.T) map[string]Cache {
	t.Helper()
	file, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return map[string]Cache{
		"memory": NewMemoryCache(),
		"file":   file,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, c := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer c.Close()

			if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
				t.Fatalf("Get(missing) = hit=%v err=%v, want miss", hit, err)
			}

			want := []byte(`{"heightPx":450}`)
			if err := c.Set(ctx, "layout", want, time.Hour); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, hit, err := c.Get(ctx, "layout")
			if err != nil || !hit {
				t.Fatalf("Get = hit=%v err=%v, want hit", hit, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("Get = %q, want %q", got, want)
			}

			if err := c.Delete(ctx, "layout"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "layout"); hit {
				t.Error("Get after Delete should miss")
			}
			if err := c.Delete(ctx, "layout"); err != nil {
				t.Errorf("Delete of missing key: %v", err)
			}
		})
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()

	for name, c := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer c.Close()

			if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
				t.Fatalf("Set: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
			if _, hit, _ := c.Get(ctx, "k"); hit {
				t.Error("expired entry should miss")
			}

			// Zero TTL never expires.
			if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if _, hit, _ := c.Get(ctx, "forever"); !hit {
				t.Error("zero-TTL entry should persist")
			}
		})
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryCache()
	a := NewScoped(backend, "report:a:")
	b := NewScoped(backend, "report:b:")

	if err := a.Set(ctx, "chart", []byte("alpha"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := b.Get(ctx, "chart"); hit {
		t.Error("scopes should not share keys")
	}
	got, hit, _ := a.Get(ctx, "chart")
	if !hit || string(got) != "alpha" {
		t.Errorf("Get = %q hit=%v, want alpha", got, hit)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("null cache should never hit")
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.ChartKey("signups"); !strings.HasPrefix(got, "chart:") {
		t.Errorf("ChartKey = %q, want chart: prefix", got)
	}
	if k.ChartKey("signups") != k.ChartKey("signups") {
		t.Error("keys must be deterministic")
	}
	if k.ChartKey("signups") == k.ChartKey("visits") {
		t.Error("different ids must key differently")
	}
	if k.LayoutKey("h1", 800, "p1") == k.LayoutKey("h1", 900, "p1") {
		t.Error("different widths must key differently")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errNotRetryable
	})
	if err != errNotRetryable || calls != 1 {
		t.Errorf("non-retryable error: calls=%d err=%v, want 1 call", calls, err)
	}

	if !IsRetryable(Retryable(errNotRetryable)) {
		t.Error("Retryable wrapper should mark errors retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should stay nil")
	}
}

var errNotRetryable = errors.New("chart result missing")
