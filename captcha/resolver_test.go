package captcha

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type fakeCache struct {
	values map[string]string
	getErr error
	putErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeCache) Put(_ context.Context, key, value string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.values[key] = value
	return nil
}

func TestResolverSetThenValid(t *testing.T) {
	cache := newFakeCache()
	r := NewResolver(cache)
	ctx := context.Background()

	if err := r.Set(ctx, "aB3kP", time.Now()); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	tests := []struct {
		name      string
		presented string
		want      bool
	}{
		{name: "exact match", presented: "aB3kP", want: true},
		{name: "case insensitive match", presented: "AB3KP", want: true},
		{name: "mismatch", presented: "zzzzz", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Valid(ctx, tc.presented)
			if err != nil {
				t.Fatalf("valid failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("valid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolverValidFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		r := NewResolver(newFakeCache())
		if _, err := r.Valid(ctx, ""); !errors.Is(err, ErrIncorrect) {
			t.Fatalf("expected ErrIncorrect, got %v", err)
		}
	})

	t.Run("nothing stored", func(t *testing.T) {
		r := NewResolver(newFakeCache())
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrIncorrect) {
			t.Fatalf("expected ErrIncorrect, got %v", err)
		}
	})

	t.Run("blank sentinel stored", func(t *testing.T) {
		cache := newFakeCache()
		r := NewResolver(cache)
		if err := r.Set(ctx, "   ", time.Now()); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrIncorrect) {
			t.Fatalf("expected ErrIncorrect, got %v", err)
		}
	})

	t.Run("date entry missing", func(t *testing.T) {
		cache := newFakeCache()
		r := NewResolver(cache)
		cache.values[r.StoreKey()] = "aB3kP"
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrIncorrect) {
			t.Fatalf("expected ErrIncorrect, got %v", err)
		}
	})

	t.Run("date entry corrupt", func(t *testing.T) {
		cache := newFakeCache()
		r := NewResolver(cache)
		cache.values[r.StoreKey()] = "aB3kP"
		cache.values[r.DateKey()] = "not-a-timestamp"
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrIncorrect) {
			t.Fatalf("expected ErrIncorrect, got %v", err)
		}
	})

	t.Run("expired even on match", func(t *testing.T) {
		cache := newFakeCache()
		r := NewResolver(cache)
		stale := time.Now().Add(-2 * DefaultTimeout)
		if err := r.Set(ctx, "aB3kP", stale); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("cache read failure", func(t *testing.T) {
		cache := newFakeCache()
		cache.getErr = errors.New("connection refused")
		r := NewResolver(cache)
		if _, err := r.Valid(ctx, "aB3kP"); !errors.Is(err, ErrBackend) {
			t.Fatalf("expected ErrBackend, got %v", err)
		}
	})
}

func TestResolverInit(t *testing.T) {
	tests := []struct {
		name         string
		storeKey     string
		dateKey      string
		timeout      time.Duration
		wantStoreKey string
		wantDateKey  string
		wantTimeout  time.Duration
	}{
		{
			name:         "all supplied",
			storeKey:     "custom.text",
			dateKey:      "custom.date",
			timeout:      90 * time.Second,
			wantStoreKey: "custom.text",
			wantDateKey:  "custom.date",
			wantTimeout:  90 * time.Second,
		},
		{
			name:         "empty keys kept",
			storeKey:     "",
			dateKey:      "  ",
			timeout:      90 * time.Second,
			wantStoreKey: DefaultStoreKey,
			wantDateKey:  DefaultDateKey,
			wantTimeout:  90 * time.Second,
		},
		{
			name:         "non-positive timeout kept",
			storeKey:     "custom.text",
			dateKey:      "custom.date",
			timeout:      0,
			wantStoreKey: "custom.text",
			wantDateKey:  "custom.date",
			wantTimeout:  DefaultTimeout,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(newFakeCache())
			r.Init(tc.storeKey, tc.dateKey, tc.timeout)
			if r.StoreKey() != tc.wantStoreKey {
				t.Fatalf("store key = %q, want %q", r.StoreKey(), tc.wantStoreKey)
			}
			if r.DateKey() != tc.wantDateKey {
				t.Fatalf("date key = %q, want %q", r.DateKey(), tc.wantDateKey)
			}
			if r.Timeout() != tc.wantTimeout {
				t.Fatalf("timeout = %v, want %v", r.Timeout(), tc.wantTimeout)
			}
		})
	}
}

func TestResolverInitConfig(t *testing.T) {
	r := NewResolver(newFakeCache())
	r.InitConfig(Config{StoreKey: "cfg.text", Timeout: 2 * time.Minute})

	if r.StoreKey() != "cfg.text" {
		t.Fatalf("store key = %q, want cfg.text", r.StoreKey())
	}
	if r.DateKey() != DefaultDateKey {
		t.Fatalf("date key = %q, want default", r.DateKey())
	}
	if r.Timeout() != 2*time.Minute {
		t.Fatalf("timeout = %v, want 2m", r.Timeout())
	}
}

func TestResolverScoped(t *testing.T) {
	cache := newFakeCache()
	base := NewResolver(cache)
	ctx := context.Background()

	a := base.Scoped("challenge-a")
	b := base.Scoped("challenge-b")

	if err := a.Set(ctx, "first", time.Now()); err != nil {
		t.Fatalf("set a failed: %v", err)
	}
	if err := b.Set(ctx, "second", time.Now()); err != nil {
		t.Fatalf("set b failed: %v", err)
	}

	ok, err := a.Valid(ctx, "first")
	if err != nil || !ok {
		t.Fatalf("scoped a valid = %v, %v", ok, err)
	}
	ok, err = b.Valid(ctx, "second")
	if err != nil || !ok {
		t.Fatalf("scoped b valid = %v, %v", ok, err)
	}

	// Base keys were never written.
	if _, err := base.Valid(ctx, "first"); !errors.Is(err, ErrIncorrect) {
		t.Fatalf("expected ErrIncorrect on base resolver, got %v", err)
	}

	if base.Scoped("") != base {
		t.Fatal("empty scope must return the receiver")
	}
}

func TestResolverSetDefaultsDate(t *testing.T) {
	cache := newFakeCache()
	r := NewResolver(cache)
	ctx := context.Background()

	before := time.Now().UnixMilli()
	if err := r.Set(ctx, "aB3kP", time.Time{}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	after := time.Now().UnixMilli()

	raw, ok := cache.values[r.DateKey()]
	if !ok {
		t.Fatal("date entry not written")
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		t.Fatalf("date entry not numeric: %v", err)
	}
	if millis < before || millis > after {
		t.Fatalf("date %d outside [%d, %d]", millis, before, after)
	}
}
