package middleware

import (
	"net/http"

	goSecure "github.com/MrEthical07/goSecure"
	"github.com/MrEthical07/goSecure/filterchain"
)

// Chains routes requests through the engine's filter-chain definitions.
// Paths resolving to an anonymous chain pass straight through; paths on an
// authenticated chain are redirected to the login URL unless isAuthenticated
// reports true; the logout chain redirects to the configured post-logout
// URL. Paths matching no definition pass through untouched.
func Chains(engine *goSecure.Engine, isAuthenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	var login goSecure.LoginConfig
	if engine != nil {
		login = engine.Config().Login
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			chain, err := engine.ResolveChain(r.URL.Path)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			switch chain {
			case filterchain.ChainAnon:
				next.ServeHTTP(w, r)
			case filterchain.ChainLogout:
				if login.PostOnlyLogout && r.Method != http.MethodPost {
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
					return
				}
				http.Redirect(w, r, login.RedirectURL, http.StatusFound)
			case filterchain.ChainAuthc, filterchain.ChainUser:
				if isAuthenticated == nil || !isAuthenticated(r) {
					http.Redirect(w, r, login.LoginURL, http.StatusFound)
					return
				}
				next.ServeHTTP(w, r)
			default:
				// Unknown chain names fail closed.
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
