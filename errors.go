package goSecure

import "errors"

var (
	// ErrIncorrectCaptcha is an exported constant or variable used by the security engine.
	ErrIncorrectCaptcha = errors.New("incorrect captcha")
	// ErrInvalidCaptcha is an exported constant or variable used by the security engine.
	ErrInvalidCaptcha = errors.New("invalid captcha")
	// ErrCaptchaDisabled is an exported constant or variable used by the security engine.
	ErrCaptchaDisabled = errors.New("captcha disabled")
	// ErrCaptchaUnavailable is an exported constant or variable used by the security engine.
	ErrCaptchaUnavailable = errors.New("captcha backend unavailable")
	// ErrStatelessDisabled is an exported constant or variable used by the security engine.
	ErrStatelessDisabled = errors.New("stateless captcha tokens disabled")
	// ErrChainNotFound is an exported constant or variable used by the security engine.
	ErrChainNotFound = errors.New("no filter chain matches path")
	// ErrRoleNotFound is an exported constant or variable used by the security engine.
	ErrRoleNotFound = errors.New("role not registered")
	// ErrEngineNotReady is an exported constant or variable used by the security engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
