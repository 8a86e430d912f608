package goSecure

import "github.com/MrEthical07/goSecure/captcha"

// Cache is the backend contract shared by every cache-backed component.
// It is re-exported from [captcha.Cache] so integrators only depend on the
// root package.
type Cache = captcha.Cache

// CaptchaToken is an authentication submission carrying a captcha answer.
// Login request types implement it so the engine can verify the captcha
// before credentials are checked.
type CaptchaToken interface {
	Captcha() string
}

// RolePermission grants a set of wildcard permission expressions to a role.
// Expressions follow the "domain:action:instance" form accepted by
// [permission.Parse].
type RolePermission struct {
	Role        string
	Permissions []string
}

// CaptchaChallenge is returned by [Engine.IssueChallenge]. The ID travels to
// the client alongside the rendered text and must be echoed back on
// verification.
type CaptchaChallenge struct {
	ID       string
	Text     string
	IssuedAt int64
}

// StatelessCaptcha is returned by [Engine.IssueStatelessCaptcha]. The token
// is a signed claim over the text and needs no server-side storage.
type StatelessCaptcha struct {
	Token string
	Text  string
}

// WarnFunc receives non-fatal notices from the engine, such as a cache
// backend error during captcha verification. Nil disables warnings.
type WarnFunc func(msg string, err error)
