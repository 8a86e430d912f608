package goSecure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goSecure/captcha"
	"github.com/MrEthical07/goSecure/token"
	"github.com/google/uuid"
)

// VerifyCaptcha checks the captcha carried by an authentication token. When
// the captcha feature is disabled the check passes unconditionally. A nil
// token or a wrong answer yields [ErrIncorrectCaptcha]; an expired challenge
// yields [ErrInvalidCaptcha].
func (e *Engine) VerifyCaptcha(ctx context.Context, tok CaptchaToken) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if !e.captchaActive() {
		return nil
	}
	if tok == nil {
		e.metricInc(MetricCaptchaIncorrect)
		return ErrIncorrectCaptcha
	}

	ok, err := e.ValidCaptcha(ctx, tok.Captcha())
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectCaptcha
	}
	return nil
}

// ValidCaptcha checks text against the stored challenge and reports whether
// it matches, case-insensitively. When the captcha feature is disabled it
// reports true. A missing or expired challenge is returned as an error, not
// a mismatch.
func (e *Engine) ValidCaptcha(ctx context.Context, text string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	if !e.captchaActive() {
		return true, nil
	}
	if e.resolver == nil {
		return false, ErrEngineNotReady
	}

	ok, err := e.resolverFor(ctx).Valid(ctx, text)
	if err != nil {
		return false, e.mapCaptchaError(ctx, err)
	}
	if !ok {
		e.metricInc(MetricCaptchaIncorrect)
		return false, nil
	}
	e.metricInc(MetricCaptchaVerified)
	return true, nil
}

// IssueCaptcha stores text as the current challenge, stamped at. A zero at
// defaults to the current time.
func (e *Engine) IssueCaptcha(ctx context.Context, text string, at time.Time) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if !e.captchaActive() {
		return ErrCaptchaDisabled
	}
	if e.resolver == nil {
		return ErrEngineNotReady
	}

	if err := e.resolverFor(ctx).Set(ctx, text, at); err != nil {
		return e.mapCaptchaError(ctx, err)
	}
	e.metricInc(MetricCaptchaIssued)
	return nil
}

// IssueChallenge generates a fresh captcha and stores it under a unique
// challenge ID, so concurrent clients cannot consume each other's records.
// The ID and text travel to the client; the ID comes back through
// [Engine.VerifyChallenge].
func (e *Engine) IssueChallenge(ctx context.Context) (CaptchaChallenge, error) {
	if e == nil {
		return CaptchaChallenge{}, ErrEngineNotReady
	}
	if !e.captchaActive() {
		return CaptchaChallenge{}, ErrCaptchaDisabled
	}
	if e.resolver == nil {
		return CaptchaChallenge{}, ErrEngineNotReady
	}

	text, err := captcha.NewText(e.config.Captcha.TextLength)
	if err != nil {
		return CaptchaChallenge{}, err
	}

	id := uuid.NewString()
	now := time.Now()
	if err := e.resolver.Scoped(id).Set(ctx, text, now); err != nil {
		return CaptchaChallenge{}, e.mapCaptchaError(ctx, err)
	}
	e.metricInc(MetricCaptchaIssued)

	return CaptchaChallenge{ID: id, Text: text, IssuedAt: now.UnixMilli()}, nil
}

// VerifyChallenge checks text against the challenge stored under id.
func (e *Engine) VerifyChallenge(ctx context.Context, id, text string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	if !e.captchaActive() {
		return true, nil
	}
	if e.resolver == nil {
		return false, ErrEngineNotReady
	}
	if id == "" {
		e.metricInc(MetricCaptchaIncorrect)
		return false, ErrIncorrectCaptcha
	}

	ok, err := e.resolver.Scoped(id).Valid(ctx, text)
	if err != nil {
		return false, e.mapCaptchaError(ctx, err)
	}
	if !ok {
		e.metricInc(MetricCaptchaIncorrect)
		return false, nil
	}
	e.metricInc(MetricCaptchaVerified)
	return true, nil
}

// IssueStatelessCaptcha generates a fresh captcha and signs it into a
// self-contained token, for deployments that run without a shared cache.
// Requires Session.Stateless and a configured TokenKey.
func (e *Engine) IssueStatelessCaptcha(ctx context.Context) (StatelessCaptcha, error) {
	if e == nil {
		return StatelessCaptcha{}, ErrEngineNotReady
	}
	if !e.captchaActive() {
		return StatelessCaptcha{}, ErrCaptchaDisabled
	}
	if e.tokens == nil {
		return StatelessCaptcha{}, ErrStatelessDisabled
	}

	text, err := captcha.NewText(e.config.Captcha.TextLength)
	if err != nil {
		return StatelessCaptcha{}, err
	}
	signed, err := e.tokens.Issue(text)
	if err != nil {
		return StatelessCaptcha{}, err
	}
	e.metricInc(MetricCaptchaIssued)

	return StatelessCaptcha{Token: signed, Text: text}, nil
}

// VerifyStatelessCaptcha checks text against a token produced by
// [Engine.IssueStatelessCaptcha]. An expired token yields
// [ErrInvalidCaptcha]; a tampered token or wrong answer yields
// [ErrIncorrectCaptcha].
func (e *Engine) VerifyStatelessCaptcha(tokenStr, text string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if !e.captchaActive() {
		return nil
	}
	if e.tokens == nil {
		return ErrStatelessDisabled
	}

	switch err := e.tokens.Verify(tokenStr, text); {
	case err == nil:
		e.metricInc(MetricCaptchaVerified)
		return nil
	case errors.Is(err, token.ErrExpired):
		e.metricInc(MetricCaptchaExpired)
		return ErrInvalidCaptcha
	default:
		e.metricInc(MetricCaptchaIncorrect)
		return ErrIncorrectCaptcha
	}
}

func (e *Engine) captchaActive() bool {
	return e.config.Enabled && e.config.Captcha.Enabled
}

func (e *Engine) resolverFor(ctx context.Context) *captcha.Resolver {
	return e.resolver.Scoped(captchaScopeFromContext(ctx))
}

func (e *Engine) mapCaptchaError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, captcha.ErrIncorrect):
		e.metricInc(MetricCaptchaIncorrect)
		return ErrIncorrectCaptcha
	case errors.Is(err, captcha.ErrTimeout):
		e.metricInc(MetricCaptchaExpired)
		return ErrInvalidCaptcha
	case errors.Is(err, captcha.ErrBackend):
		e.metricInc(MetricCaptchaUnavailable)
		if ip := clientIPFromContext(ctx); ip != "" {
			e.warnf(fmt.Sprintf("captcha backend failure (client %s)", ip), err)
		} else {
			e.warnf("captcha backend failure", err)
		}
		return fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err)
	}
	return err
}
