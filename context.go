package goSecure

import "context"

type clientIPContextKey struct{}
type captchaScopeContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine records
// it in warnings emitted during captcha verification.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithCaptchaScope attaches a scope identifier to ctx. When set, captcha
// reads and writes are keyed per scope so concurrent clients cannot consume
// each other's challenges.
func WithCaptchaScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, captchaScopeContextKey{}, scope)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func captchaScopeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	scope, _ := ctx.Value(captchaScopeContextKey{}).(string)
	return scope
}
