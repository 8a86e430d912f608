package goSecure

import (
	"errors"

	"github.com/MrEthical07/goSecure/captcha"
	"github.com/MrEthical07/goSecure/filterchain"
	"github.com/MrEthical07/goSecure/permission"
	"github.com/MrEthical07/goSecure/rediscache"
	"github.com/MrEthical07/goSecure/token"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goSecure APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	cache  Cache
	redis  *redis.Client
	warn   WarnFunc

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCache sets the backend the captcha resolver stores records through.
// It takes precedence over [Builder.WithRedis].
func (b *Builder) WithCache(cache Cache) *Builder {
	b.cache = cache
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithWarnFunc sets the sink for non-fatal engine notices.
func (b *Builder) WithWarnFunc(fn WarnFunc) *Builder {
	b.warn = fn
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	cfg.Cache = cfg.Cache.Coupled()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache := b.cache
	if cache == nil && b.redis != nil {
		// Entries expire server-side at twice the validity window; the age
		// check in the resolver still enforces the exact timeout.
		cache = rediscache.New(b.redis, "", 2*cfg.Captcha.Timeout)
	}
	if cfg.Enabled && cfg.Captcha.Enabled && !cfg.Session.Stateless && cache == nil {
		return nil, errors.New("cache backend required when captcha is enabled")
	}

	// -------- CAPTCHA RESOLVER --------
	var resolver *captcha.Resolver
	if cache != nil {
		resolver = captcha.NewResolver(cache)
		resolver.InitConfig(captcha.Config{
			StoreKey: cfg.Captcha.StoreKey,
			DateKey:  cfg.Captcha.DateKey,
			Timeout:  cfg.Captcha.Timeout,
		})
	}

	// -------- FILTER CHAINS --------
	chains := filterchain.NewResolver()
	if err := chains.RegisterAll(cfg.FilterChains); err != nil {
		return nil, err
	}
	chains.Freeze()

	// -------- ROLE PERMISSIONS --------
	roles := permission.NewRegistry()
	for _, rp := range cfg.RolePermissions {
		if err := roles.RegisterRole(rp.Role, rp.Permissions); err != nil {
			return nil, err
		}
	}
	roles.Freeze()

	// -------- STATELESS TOKENS --------
	var tokens *token.Manager
	if cfg.Session.Stateless && cfg.Captcha.Enabled {
		tm, err := token.NewManager(token.Config{
			Key:    cfg.Captcha.TokenKey,
			Issuer: cfg.Captcha.TokenIssuer,
			TTL:    cfg.Captcha.Timeout,
		})
		if err != nil {
			return nil, err
		}
		tokens = tm
	}

	engine := &Engine{
		config:   cfg,
		resolver: resolver,
		chains:   chains,
		roles:    roles,
		tokens:   tokens,
		metrics:  NewMetrics(),
		warn:     b.warn,
	}

	b.built = true

	return engine, nil
}
