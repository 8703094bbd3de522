// Package middleware provides HTTP middleware for the Cemas API.
package middleware

import (
	"net/http"
	"strconv"
	"time"
)

const (
	corsAllowMethods = "GET, POST, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Request-Id"
	corsMaxAge       = 10 * time.Minute
)

// CORS returns middleware that answers cross-origin requests from
// allowedOrigins. A "*" entry echoes any origin but never allows credentials,
// so the identity cookie only travels to origins listed by name. Preflight
// requests are answered here and do not reach the router.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	named := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		named[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")

			if origin != "" {
				_, explicit := named[origin]
				if explicit || wildcard {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Expose-Headers", "X-Request-Id")
					if explicit {
						h.Set("Access-Control-Allow-Credentials", "true")
					}
					if r.Method == http.MethodOptions {
						h.Set("Access-Control-Allow-Methods", corsAllowMethods)
						h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
						h.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
					}
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
