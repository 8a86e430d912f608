package captcha

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultStoreKey is the cache key holding the issued captcha text.
	DefaultStoreKey = "goSecure.captcha"
	// DefaultDateKey is the cache key holding the captcha issue time.
	DefaultDateKey = "goSecure.captcha.date"
	// DefaultTimeout bounds how long an issued captcha stays valid.
	DefaultTimeout = 60 * time.Second
)

var (
	// ErrIncorrect reports a missing or unusable captcha record: empty input,
	// nothing issued, or an issue-time entry that is absent or corrupt.
	ErrIncorrect = errors.New("captcha incorrect")
	// ErrTimeout reports a captcha presented after its validity window.
	ErrTimeout = errors.New("captcha timeout")
	// ErrBackend reports a cache failure while reading or writing a record.
	ErrBackend = errors.New("captcha cache unavailable")
)

// Cache is the capability the resolver stores records through. One instance
// is injected at construction; its consistency and eviction guarantees are
// the implementation's.
type Cache interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores value under key.
	Put(ctx context.Context, key string, value string) error
}

// Config carries the resolver settings applied by [Resolver.InitConfig].
// Zero values mean "keep the current setting".
type Config struct {
	StoreKey string
	DateKey  string
	Timeout  time.Duration
}

// Resolver validates time-boxed captcha values against a cache-backed record.
// It holds configuration only; all state lives in the injected cache.
type Resolver struct {
	storeKey string
	dateKey  string
	timeout  time.Duration
	cache    Cache
}

// NewResolver returns a resolver with default keys and timeout on top of the
// supplied cache.
func NewResolver(cache Cache) *Resolver {
	return &Resolver{
		storeKey: DefaultStoreKey,
		dateKey:  DefaultDateKey,
		timeout:  DefaultTimeout,
		cache:    cache,
	}
}

// Init overrides the store key, date key, and timeout. Empty keys and
// non-positive timeouts are ignored and the current values kept.
func (r *Resolver) Init(storeKey, dateKey string, timeout time.Duration) {
	if strings.TrimSpace(storeKey) != "" {
		r.storeKey = storeKey
	}
	if strings.TrimSpace(dateKey) != "" {
		r.dateKey = dateKey
	}
	if timeout > 0 {
		r.timeout = timeout
	}
}

// InitConfig applies cfg with the same keep-on-zero semantics as [Resolver.Init].
func (r *Resolver) InitConfig(cfg Config) {
	r.Init(cfg.StoreKey, cfg.DateKey, cfg.Timeout)
}

// Scoped returns a copy of the resolver whose keys are suffixed with id,
// so that concurrent challenges do not overwrite each other's records.
func (r *Resolver) Scoped(id string) *Resolver {
	if id == "" {
		return r
	}
	out := *r
	out.storeKey = r.storeKey + ":" + id
	out.dateKey = r.dateKey + ":" + id
	return &out
}

// Valid checks text against the stored record.
//
// It fails with [ErrIncorrect] when text is empty, when no captcha was issued,
// or when the issue-time entry is missing or unreadable, and with [ErrTimeout]
// when the record is older than the configured timeout. Otherwise it reports
// whether text equals the stored value, case-insensitively.
func (r *Resolver) Valid(ctx context.Context, text string) (bool, error) {
	if text == "" {
		return false, ErrIncorrect
	}

	stored, ok, err := r.cache.Get(ctx, r.storeKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if !ok || stored == "" {
		return false, ErrIncorrect
	}

	issuedMillis, ok, err := r.issuedAt(ctx)
	if err != nil {
		return false, err
	}
	// A text entry without a readable issue time is an unusable record, not
	// an expired one.
	if !ok {
		return false, ErrIncorrect
	}
	if time.Now().UnixMilli()-issuedMillis > r.timeout.Milliseconds() {
		return false, ErrTimeout
	}

	return strings.EqualFold(stored, text), nil
}

// Set stores text and its issue time in the cache. Blank text is stored as an
// empty sentinel; a zero at defaults to the current time. The record has no
// explicit deletion; expiry relies on the cache's own TTL policy plus the
// age check in [Resolver.Valid].
func (r *Resolver) Set(ctx context.Context, text string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}

	if err := r.cache.Put(ctx, r.storeKey, strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if err := r.cache.Put(ctx, r.dateKey, strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

func (r *Resolver) issuedAt(ctx context.Context) (int64, bool, error) {
	raw, ok, err := r.cache.Get(ctx, r.dateKey)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if !ok {
		return 0, false, nil
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return millis, true, nil
}

// StoreKey returns the cache key holding the captcha text.
func (r *Resolver) StoreKey() string {
	return r.storeKey
}

// DateKey returns the cache key holding the captcha issue time.
func (r *Resolver) DateKey() string {
	return r.dateKey
}

// Timeout returns the configured captcha validity window.
func (r *Resolver) Timeout() time.Duration {
	return r.timeout
}
