package goSecure

import (
	"fmt"
	"os"
	"time"

	"github.com/MrEthical07/goSecure/filterchain"
	"gopkg.in/yaml.v3"
)

// fileConfig is the top-level YAML document. All security settings live
// under the "security" key; absent keys keep their defaults.
type fileConfig struct {
	Security securityYAML `yaml:"security"`
}

// securityYAML mirrors [Config] with the external key spelling. Durations
// are plain integers in milliseconds. Pointer fields distinguish "absent"
// from a zero value.
type securityYAML struct {
	Enabled *bool `yaml:"enabled"`

	SessionTimeout                    *int64  `yaml:"sessionTimeout"`
	SessionValidationInterval         *int64  `yaml:"sessionValidationInterval"`
	SessionValidationSchedulerEnabled *bool   `yaml:"sessionValidationSchedulerEnabled"`
	SessionCreationEnabled            *bool   `yaml:"sessionCreationEnabled"`
	SessionStorageEnabled             *bool   `yaml:"sessionStorageEnabled"`
	SessionStateless                  *bool   `yaml:"sessionStateless"`
	UserNativeSessionManager          *bool   `yaml:"userNativeSessionManager"`
	UniqueLogin                       *bool   `yaml:"uniqueLogin"`
	KickoutFirst                      *bool   `yaml:"kickoutFirst"`
	MaximumKickout                    *int    `yaml:"maximumKickout"`
	ActiveSessionCacheName            *string `yaml:"activeSessionCacheName"`
	SessionDequeCacheName             *string `yaml:"sessionDequeCacheName"`

	CachingEnabled               *bool   `yaml:"cachingEnabled"`
	AuthenticationCachingEnabled *bool   `yaml:"authenticationCachingEnabled"`
	AuthenticationCacheName      *string `yaml:"authenticationCacheName"`
	AuthorizationCachingEnabled  *bool   `yaml:"authorizationCachingEnabled"`
	AuthorizationCacheName       *string `yaml:"authorizationCacheName"`
	SessionCachingEnabled        *bool   `yaml:"sessionCachingEnabled"`

	CaptchaEnabled     *bool   `yaml:"captchaEnabled"`
	CaptchaParamName   *string `yaml:"captchaParamName"`
	CaptchaStoreKey    *string `yaml:"captchaStoreKey"`
	CaptchaDateKey     *string `yaml:"captchaDateKey"`
	CaptchaTimeout     *int64  `yaml:"captchaTimeout"`
	CaptchaTextLength  *int    `yaml:"captchaTextLength"`
	CaptchaTokenKey    *string `yaml:"captchaTokenKey"`
	CaptchaTokenIssuer *string `yaml:"captchaTokenIssuer"`

	LoginURL        *string `yaml:"loginUrl"`
	SuccessURL      *string `yaml:"successUrl"`
	FailureURL      *string `yaml:"failureUrl"`
	RedirectURL     *string `yaml:"redirectUrl"`
	UnauthorizedURL *string `yaml:"unauthorizedUrl"`
	PostOnlyLogout  *bool   `yaml:"postOnlyLogout"`

	CredentialsRetryLimit     *int    `yaml:"credentialsRetryLimit"`
	CredentialsRetryCacheName *string `yaml:"credentialsRetryCacheName"`
	RetryTimesKeyAttribute    *string `yaml:"retryTimesKeyAttribute"`
	MaxWhenAccessDenied       *int    `yaml:"maxWhenAccessDenied"`

	FilterChains []filterChainYAML    `yaml:"filterChainDefinitions"`
	Roles        []rolePermissionYAML `yaml:"rolePermissions"`
}

type filterChainYAML struct {
	Pattern string `yaml:"pattern"`
	Chain   string `yaml:"chain"`
}

type rolePermissionYAML struct {
	Role        string   `yaml:"role"`
	Permissions []string `yaml:"permissions"`
}

// LoadConfig reads, parses, and validates a YAML config file. Settings not
// present in the file keep their [DefaultConfig] values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data.
func ParseConfig(data []byte) (Config, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := defaultConfig()
	applyYAML(&cfg, file.Security)
	cfg.Cache = cfg.Cache.Coupled()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyYAML(cfg *Config, y securityYAML) {
	setBool(&cfg.Enabled, y.Enabled)

	setMillis(&cfg.Session.Timeout, y.SessionTimeout)
	setMillis(&cfg.Session.ValidationInterval, y.SessionValidationInterval)
	setBool(&cfg.Session.ValidationSchedulerEnabled, y.SessionValidationSchedulerEnabled)
	setBool(&cfg.Session.CreationEnabled, y.SessionCreationEnabled)
	setBool(&cfg.Session.StorageEnabled, y.SessionStorageEnabled)
	setBool(&cfg.Session.Stateless, y.SessionStateless)
	setBool(&cfg.Session.UseNativeManager, y.UserNativeSessionManager)
	setBool(&cfg.Session.UniqueLogin, y.UniqueLogin)
	setBool(&cfg.Session.KickoutFirst, y.KickoutFirst)
	setInt(&cfg.Session.MaximumKickout, y.MaximumKickout)
	setString(&cfg.Session.ActiveCacheName, y.ActiveSessionCacheName)
	setString(&cfg.Session.DequeCacheName, y.SessionDequeCacheName)

	setBool(&cfg.Cache.Enabled, y.CachingEnabled)
	setBool(&cfg.Cache.Authentication, y.AuthenticationCachingEnabled)
	setString(&cfg.Cache.AuthenticationName, y.AuthenticationCacheName)
	setBool(&cfg.Cache.Authorization, y.AuthorizationCachingEnabled)
	setString(&cfg.Cache.AuthorizationName, y.AuthorizationCacheName)
	setBool(&cfg.Cache.Session, y.SessionCachingEnabled)

	setBool(&cfg.Captcha.Enabled, y.CaptchaEnabled)
	setString(&cfg.Captcha.ParamName, y.CaptchaParamName)
	setString(&cfg.Captcha.StoreKey, y.CaptchaStoreKey)
	setString(&cfg.Captcha.DateKey, y.CaptchaDateKey)
	setMillis(&cfg.Captcha.Timeout, y.CaptchaTimeout)
	setInt(&cfg.Captcha.TextLength, y.CaptchaTextLength)
	if y.CaptchaTokenKey != nil {
		cfg.Captcha.TokenKey = []byte(*y.CaptchaTokenKey)
	}
	setString(&cfg.Captcha.TokenIssuer, y.CaptchaTokenIssuer)

	setString(&cfg.Login.LoginURL, y.LoginURL)
	setString(&cfg.Login.SuccessURL, y.SuccessURL)
	setString(&cfg.Login.FailureURL, y.FailureURL)
	setString(&cfg.Login.RedirectURL, y.RedirectURL)
	setString(&cfg.Login.UnauthorizedURL, y.UnauthorizedURL)
	setBool(&cfg.Login.PostOnlyLogout, y.PostOnlyLogout)

	setInt(&cfg.Retry.CredentialsLimit, y.CredentialsRetryLimit)
	setString(&cfg.Retry.CredentialsCacheName, y.CredentialsRetryCacheName)
	setString(&cfg.Retry.TimesKeyAttribute, y.RetryTimesKeyAttribute)
	setInt(&cfg.Retry.MaxWhenAccessDenied, y.MaxWhenAccessDenied)

	// Declared chains append after the default anonymous-access patterns;
	// evaluation order inside the file is preserved.
	for _, fc := range y.FilterChains {
		cfg.FilterChains = append(cfg.FilterChains, filterchain.Definition{
			Pattern: fc.Pattern,
			Chain:   fc.Chain,
		})
	}
	for _, rp := range y.Roles {
		cfg.RolePermissions = append(cfg.RolePermissions, RolePermission{
			Role:        rp.Role,
			Permissions: rp.Permissions,
		})
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setMillis(dst *time.Duration, src *int64) {
	if src != nil {
		*dst = time.Duration(*src) * time.Millisecond
	}
}
