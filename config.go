package goSecure

import (
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/goSecure/captcha"
	"github.com/MrEthical07/goSecure/filterchain"
)

// Config defines a public type used by goSecure APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Enabled turns the whole security layer on. All other sections are
	// inert while it is false.
	Enabled bool

	Session SessionConfig
	Cache   CacheConfig
	Captcha CaptchaConfig
	Login   LoginConfig
	Retry   RetryConfig

	// FilterChains maps URL patterns to filter-chain names. Order matters:
	// the first matching pattern wins.
	FilterChains []filterchain.Definition

	// RolePermissions holds the default permission strings granted per role,
	// in declaration order.
	RolePermissions []RolePermission
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goSecure APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	Timeout                    time.Duration
	ValidationInterval         time.Duration
	ValidationSchedulerEnabled bool
	CreationEnabled            bool
	StorageEnabled             bool
	Stateless                  bool
	UseNativeManager           bool
	UniqueLogin                bool
	KickoutFirst               bool
	MaximumKickout             int
	ActiveCacheName            string
	DequeCacheName             string
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by goSecure APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	// Enabled is the master caching flag. The per-concern flags below only
	// take effect while it is true.
	Enabled            bool
	Authentication     bool
	AuthenticationName string
	Authorization      bool
	AuthorizationName  string
	Session            bool
}

// Coupled returns a copy with the master flag forced on when any per-concern
// flag is set. The coupling is one-way: clearing a per-concern flag never
// clears the master flag.
func (c CacheConfig) Coupled() CacheConfig {
	if c.Authentication || c.Authorization || c.Session {
		c.Enabled = true
	}
	return c
}

/*
====================================
CAPTCHA CONFIG
====================================
*/

// CaptchaConfig defines a public type used by goSecure APIs.
//
// CaptchaConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CaptchaConfig struct {
	Enabled   bool
	ParamName string
	StoreKey  string
	DateKey   string
	Timeout   time.Duration
	// TextLength is the number of characters generated for a challenge.
	TextLength int
	// TokenKey signs stateless captcha tokens. Required only when
	// Session.Stateless is true.
	TokenKey    []byte
	TokenIssuer string
}

/*
====================================
LOGIN CONFIG
====================================
*/

// LoginConfig defines a public type used by goSecure APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	LoginURL   string
	SuccessURL string
	FailureURL string
	// RedirectURL is where the user lands after logout.
	RedirectURL     string
	UnauthorizedURL string
	// PostOnlyLogout restricts logout to POST requests so that browser
	// pre-fetching of a GET logout link cannot end a session.
	PostOnlyLogout bool
}

/*
====================================
RETRY CONFIG
====================================
*/

// RetryConfig defines a public type used by goSecure APIs.
//
// RetryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RetryConfig struct {
	CredentialsLimit     int
	CredentialsCacheName string
	TimesKeyAttribute    string
	MaxWhenAccessDenied  int
}

/*
====================================
DEFAULT CONFIG
====================================
*/

const (
	// DefaultCaptchaTimeout bounds how long an issued captcha stays valid.
	DefaultCaptchaTimeout = captcha.DefaultTimeout
	// DefaultSessionTimeout is the main session timeout, 30 minutes.
	DefaultSessionTimeout = 30 * time.Minute
	// DefaultSessionValidationInterval is the session validation interval, 30 seconds.
	DefaultSessionValidationInterval = 30 * time.Second

	// DefaultCaptchaStoreKey is the cache key holding the issued captcha text.
	DefaultCaptchaStoreKey = captcha.DefaultStoreKey
	// DefaultCaptchaDateKey is the cache key holding the captcha issue time.
	DefaultCaptchaDateKey = captcha.DefaultDateKey
)

// DefaultIgnored lists URL patterns that bypass security by default.
var DefaultIgnored = []string{"/**/favicon.ico", "/assets/**", "/webjars/**"}

func defaultConfig() Config {
	cfg := Config{
		Enabled: false,
		Session: SessionConfig{
			Timeout:                    DefaultSessionTimeout,
			ValidationInterval:         DefaultSessionValidationInterval,
			ValidationSchedulerEnabled: true,
			CreationEnabled:            true,
			StorageEnabled:             true,
			Stateless:                  false,
			UseNativeManager:           false,
			UniqueLogin:                false,
			KickoutFirst:               false,
			MaximumKickout:             1,
			ActiveCacheName:            "security-activeSessionCache",
			DequeCacheName:             "security-sessionDequeCache",
		},
		Cache: CacheConfig{
			Enabled:            false,
			Authentication:     false,
			AuthenticationName: "security-authenticationCache",
			Authorization:      false,
			AuthorizationName:  "security-authorizationCache",
			Session:            false,
		},
		Captcha: CaptchaConfig{
			Enabled:    false,
			ParamName:  "captcha",
			StoreKey:   DefaultCaptchaStoreKey,
			DateKey:    DefaultCaptchaDateKey,
			Timeout:    DefaultCaptchaTimeout,
			TextLength: 5,
		},
		Login: LoginConfig{
			LoginURL:    "/login",
			SuccessURL:  "/",
			RedirectURL: "/",
		},
		Retry: RetryConfig{
			CredentialsLimit:     3,
			CredentialsCacheName: "security-credentialsRetryCache",
			TimesKeyAttribute:    "failedRetries",
			MaxWhenAccessDenied:  3,
		},
	}

	for _, ignored := range DefaultIgnored {
		cfg.FilterChains = append(cfg.FilterChains, filterchain.Definition{
			Pattern: ignored,
			Chain:   filterchain.ChainAnon,
		})
	}

	return cfg
}

// DefaultConfig returns the configuration used when a [Builder] is created
// without [Builder.WithConfig]. The filter chains are pre-populated with the
// [DefaultIgnored] anonymous-access patterns.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Captcha.TokenKey = cloneBytes(cfg.Captcha.TokenKey)
	if len(cfg.FilterChains) > 0 {
		out.FilterChains = make([]filterchain.Definition, len(cfg.FilterChains))
		copy(out.FilterChains, cfg.FilterChains)
	}
	if len(cfg.RolePermissions) > 0 {
		out.RolePermissions = make([]RolePermission, len(cfg.RolePermissions))
		copy(out.RolePermissions, cfg.RolePermissions)
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
CACHE FLAG COUPLING
====================================
*/

// AuthenticationCachingEnabled reports whether authentication results may be
// cached: the per-concern flag gates on the master caching flag.
func (c *Config) AuthenticationCachingEnabled() bool {
	return c.Cache.Enabled && c.Cache.Authentication
}

// AuthorizationCachingEnabled reports whether authorization results may be
// cached: the per-concern flag gates on the master caching flag.
func (c *Config) AuthorizationCachingEnabled() bool {
	return c.Cache.Enabled && c.Cache.Authorization
}

// SessionCachingEnabled reports whether sessions may be cached: the
// per-concern flag gates on the master caching flag.
func (c *Config) SessionCachingEnabled() bool {
	return c.Cache.Enabled && c.Cache.Session
}

// SetAuthenticationCachingEnabled sets the authentication caching flag.
// Enabling it also enables the master caching flag; disabling it leaves the
// master flag unchanged.
func (c *Config) SetAuthenticationCachingEnabled(enabled bool) {
	c.Cache.Authentication = enabled
	c.Cache = c.Cache.Coupled()
}

// SetAuthorizationCachingEnabled sets the authorization caching flag.
// Enabling it also enables the master caching flag; disabling it leaves the
// master flag unchanged.
func (c *Config) SetAuthorizationCachingEnabled(enabled bool) {
	c.Cache.Authorization = enabled
	c.Cache = c.Cache.Coupled()
}

// SetSessionCachingEnabled sets the session caching flag. Enabling it also
// enables the master caching flag; disabling it leaves the master flag
// unchanged.
func (c *Config) SetSessionCachingEnabled(enabled bool) {
	c.Cache.Session = enabled
	c.Cache = c.Cache.Coupled()
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Session
	if c.Session.Timeout <= 0 {
		return errors.New("Session Timeout must be > 0")
	}
	if c.Session.ValidationInterval <= 0 {
		return errors.New("Session ValidationInterval must be > 0")
	}
	if c.Session.MaximumKickout < 1 {
		return errors.New("Session MaximumKickout must be >= 1")
	}

	// Captcha
	if c.Captcha.Timeout <= 0 {
		return errors.New("Captcha Timeout must be > 0")
	}
	if c.Captcha.Enabled {
		if strings.TrimSpace(c.Captcha.ParamName) == "" {
			return errors.New("Captcha ParamName is required when captcha is enabled")
		}
		if c.Captcha.TextLength < 4 || c.Captcha.TextLength > 16 {
			return errors.New("Captcha TextLength must be between 4 and 16")
		}
	}
	if c.Session.Stateless && c.Captcha.Enabled && len(c.Captcha.TokenKey) < 32 {
		return errors.New("Captcha TokenKey must be >= 32 bytes when sessions are stateless")
	}

	// Retry
	if c.Retry.CredentialsLimit <= 0 {
		return errors.New("Retry CredentialsLimit must be > 0")
	}
	if c.Retry.MaxWhenAccessDenied <= 0 {
		return errors.New("Retry MaxWhenAccessDenied must be > 0")
	}

	// Filter chains
	for _, def := range c.FilterChains {
		if strings.TrimSpace(def.Pattern) == "" {
			return errors.New("FilterChains pattern cannot be empty")
		}
		if strings.TrimSpace(def.Chain) == "" {
			return errors.New("FilterChains chain name cannot be empty")
		}
	}

	// Role permissions
	for _, rp := range c.RolePermissions {
		if strings.TrimSpace(rp.Role) == "" {
			return errors.New("RolePermissions role cannot be empty")
		}
	}

	return nil
}
