package httpx

import (
	"net/http"
	"strings"
)

// CORSPolicy lists the origins allowed to call the API from a browser.
// An empty list (or "*") allows any origin, which is what the public booking
// frontend needs; lock it down per deployment via config.
type CORSPolicy struct {
	AllowedOrigins []string
	AllowedMethods string
	AllowedHeaders string
}

func WithCORS(policy CORSPolicy) Middleware {
	if policy.AllowedMethods == "" {
		policy.AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	if policy.AllowedHeaders == "" {
		policy.AllowedHeaders = "Authorization, Content-Type, X-Request-Id"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !policy.originAllowed(origin) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", policy.AllowedMethods)
			h.Set("Access-Control-Allow-Headers", policy.AllowedHeaders)
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (p CORSPolicy) originAllowed(origin string) bool {
	if len(p.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range p.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
