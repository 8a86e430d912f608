package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	goSecure "github.com/MrEthical07/goSecure"
	"github.com/MrEthical07/goSecure/memcache"
)

func newCaptchaEngine(t *testing.T, enabled bool) *goSecure.Engine {
	t.Helper()

	cfg := goSecure.DefaultConfig()
	cfg.Enabled = true
	cfg.Captcha.Enabled = enabled

	engine, err := goSecure.New().
		WithConfig(cfg).
		WithCache(memcache.New(time.Minute, time.Minute)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCaptchaMiddleware(t *testing.T) {
	engine := newCaptchaEngine(t, true)
	if err := engine.IssueCaptcha(context.Background(), "AbC12", time.Time{}); err != nil {
		t.Fatalf("IssueCaptcha failed: %v", err)
	}

	handler := Captcha(engine)(okHandler())

	tests := []struct {
		name   string
		answer string
		status int
	}{
		{"correct answer", "abc12", http.StatusOK},
		{"wrong answer", "nope1", http.StatusForbidden},
		{"missing answer", "", http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, postForm("/login", url.Values{"captcha": {tc.answer}}))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

func TestCaptchaMiddlewareChallengeID(t *testing.T) {
	engine := newCaptchaEngine(t, true)

	ch, err := engine.IssueChallenge(context.Background())
	if err != nil {
		t.Fatalf("IssueChallenge failed: %v", err)
	}

	handler := Captcha(engine)(okHandler())

	req := postForm("/login", url.Values{"captcha": {ch.Text}})
	req.Header.Set("X-Captcha-ID", ch.ID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Same answer under a different challenge ID must fail.
	req = postForm("/login", url.Values{"captcha": {ch.Text}})
	req.Header.Set("X-Captcha-ID", "other")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCaptchaMiddlewareDisabled(t *testing.T) {
	engine := newCaptchaEngine(t, false)
	handler := Captcha(engine)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/login", url.Values{}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
