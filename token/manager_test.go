package token

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

var testKey = bytes.Repeat([]byte("k"), 32)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{Key: testKey, Issuer: "test", TTL: ttl})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestManagerConfigRejects(t *testing.T) {
	if _, err := NewManager(Config{Key: []byte("short"), TTL: time.Minute}); err == nil {
		t.Fatal("expected error for short key")
	}
	if _, err := NewManager(Config{Key: testKey, TTL: 0}); err == nil {
		t.Fatal("expected error for zero TTL")
	}
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("AbC12")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := m.Verify(tok, "abc12"); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if err := m.Verify(tok, "wrong"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify wrong text = %v, want ErrInvalid", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("abc12")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Advance the manager's clock past the validity window.
	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if err := m.Verify(tok, "abc12"); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify = %v, want ErrExpired", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("abc12")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other, err := NewManager(Config{Key: bytes.Repeat([]byte("x"), 32), Issuer: "test", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := other.Verify(tok, "abc12"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify with wrong key = %v, want ErrInvalid", err)
	}
	if err := m.Verify(tok+"x", "abc12"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Verify tampered = %v, want ErrInvalid", err)
	}
}
