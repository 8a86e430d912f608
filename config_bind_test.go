package goSecure

import (
	"testing"
	"time"
)

func TestParseConfigDefaultsKept(t *testing.T) {
	cfg, err := ParseConfig([]byte("security:\n  enabled: true\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled flag not applied")
	}
	if cfg.Session.Timeout != DefaultSessionTimeout {
		t.Errorf("session timeout = %v, want default %v", cfg.Session.Timeout, DefaultSessionTimeout)
	}
	if cfg.Captcha.StoreKey != DefaultCaptchaStoreKey {
		t.Errorf("captcha store key = %q, want default", cfg.Captcha.StoreKey)
	}
	if len(cfg.FilterChains) != len(DefaultIgnored) {
		t.Errorf("chains = %d, want %d defaults", len(cfg.FilterChains), len(DefaultIgnored))
	}
}

func TestParseConfigFull(t *testing.T) {
	doc := `
security:
  enabled: true
  sessionTimeout: 600000
  sessionValidationInterval: 15000
  uniqueLogin: true
  maximumKickout: 3
  authenticationCachingEnabled: true
  captchaEnabled: true
  captchaTimeout: 90000
  captchaParamName: code
  captchaTextLength: 6
  loginUrl: /signin
  credentialsRetryLimit: 5
  filterChainDefinitions:
    - pattern: /admin/**
      chain: authc
    - pattern: /public/**
      chain: anon
  rolePermissions:
    - role: admin
      permissions: ["*"]
    - role: viewer
      permissions: ["report:read", "user:read"]
`
	cfg, err := ParseConfig([]byte(doc))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Session.Timeout != 10*time.Minute {
		t.Errorf("session timeout = %v, want 10m", cfg.Session.Timeout)
	}
	if cfg.Session.ValidationInterval != 15*time.Second {
		t.Errorf("validation interval = %v, want 15s", cfg.Session.ValidationInterval)
	}
	if !cfg.Session.UniqueLogin || cfg.Session.MaximumKickout != 3 {
		t.Error("session kickout settings not applied")
	}
	if cfg.Captcha.Timeout != 90*time.Second {
		t.Errorf("captcha timeout = %v, want 90s", cfg.Captcha.Timeout)
	}
	if cfg.Captcha.ParamName != "code" || cfg.Captcha.TextLength != 6 {
		t.Error("captcha settings not applied")
	}
	if cfg.Login.LoginURL != "/signin" {
		t.Errorf("login url = %q, want /signin", cfg.Login.LoginURL)
	}
	if cfg.Retry.CredentialsLimit != 5 {
		t.Errorf("retry limit = %d, want 5", cfg.Retry.CredentialsLimit)
	}

	// Sub-flag in the file forces the master caching flag.
	if !cfg.Cache.Enabled || !cfg.AuthenticationCachingEnabled() {
		t.Error("cache flag coupling not applied after unmarshal")
	}

	// Declared chains follow the default anonymous patterns, in file order.
	n := len(DefaultIgnored)
	if len(cfg.FilterChains) != n+2 {
		t.Fatalf("chains = %d, want %d", len(cfg.FilterChains), n+2)
	}
	if cfg.FilterChains[n].Pattern != "/admin/**" || cfg.FilterChains[n].Chain != "authc" {
		t.Errorf("chain[%d] = %+v", n, cfg.FilterChains[n])
	}

	if len(cfg.RolePermissions) != 2 || cfg.RolePermissions[1].Role != "viewer" {
		t.Fatalf("roles = %+v", cfg.RolePermissions)
	}
	if len(cfg.RolePermissions[1].Permissions) != 2 {
		t.Fatalf("viewer permissions = %v", cfg.RolePermissions[1].Permissions)
	}
}

func TestParseConfigRejects(t *testing.T) {
	if _, err := ParseConfig([]byte("security: [not a map\n")); err == nil {
		t.Fatal("expected parse error")
	}
	// Values that fail validation are rejected at load time.
	if _, err := ParseConfig([]byte("security:\n  sessionTimeout: 0\n")); err == nil {
		t.Fatal("expected validation error")
	}
}
