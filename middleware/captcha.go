package middleware

import (
	"errors"
	"net/http"

	goSecure "github.com/MrEthical07/goSecure"
)

const challengeIDHeader = "X-Captcha-ID"

// Captcha rejects form submissions whose captcha answer does not match the
// stored challenge. The answer is read from the form field named by the
// engine's captcha ParamName; an optional challenge ID travels in the
// X-Captcha-ID header. When the captcha feature is disabled the wrapper
// passes every request through.
func Captcha(engine *goSecure.Engine) func(http.Handler) http.Handler {
	var paramName string
	if engine != nil {
		paramName = engine.Config().Captcha.ParamName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			text := r.PostFormValue(paramName)
			if text == "" {
				text = r.URL.Query().Get(paramName)
			}

			ctx := goSecure.WithClientIP(r.Context(), r.RemoteAddr)

			var ok bool
			var err error
			if id := r.Header.Get(challengeIDHeader); id != "" {
				ok, err = engine.VerifyChallenge(ctx, id, text)
			} else {
				ok, err = engine.ValidCaptcha(ctx, text)
			}

			switch {
			case errors.Is(err, goSecure.ErrCaptchaUnavailable):
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			case err != nil, !ok:
				http.Error(w, "captcha rejected", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
