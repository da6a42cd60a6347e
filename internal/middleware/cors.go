package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig lists the cross-origin callers of the API
type CORSConfig struct {
	AllowedOrigins   []string // exact origins, "*" or "*.domain" wildcards
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // seconds a preflight may be cached
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

// corsHeaders are the joined header values, computed once per middleware
type corsHeaders struct {
	methods string
	allowed string
	exposed string
	maxAge  string
}

// CORSMiddleware answers preflights and echoes allowed origins.
// Requests from other origins pass through without CORS headers.
func CORSMiddleware(config CORSConfig) func(http.Handler) http.Handler {
	headers := corsHeaders{
		methods: strings.Join(config.AllowedMethods, ", "),
		allowed: strings.Join(config.AllowedHeaders, ", "),
		exposed: strings.Join(config.ExposedHeaders, ", "),
	}
	if config.MaxAge > 0 {
		headers.maxAge = strconv.Itoa(config.MaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !isOriginAllowed(origin, config.AllowedOrigins) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if config.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			setIfNotEmpty(h, "Access-Control-Expose-Headers", headers.exposed)

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			setIfNotEmpty(h, "Access-Control-Allow-Methods", headers.methods)
			setIfNotEmpty(h, "Access-Control-Allow-Headers", headers.allowed)
			setIfNotEmpty(h, "Access-Control-Max-Age", headers.maxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func setIfNotEmpty(h http.Header, key, value string) {
	if value != "" {
		h.Set(key, value)
	}
}

// isOriginAllowed matches exact origins and "*.domain" patterns against the origin's host
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}

	for _, allowed := range allowedOrigins {
		switch {
		case allowed == "*", allowed == origin:
			return true
		case strings.HasPrefix(allowed, "*."):
			if strings.HasSuffix(host, allowed[1:]) {
				return true
			}
		}
	}
	return false
}

// SecurityHeadersMiddleware sets the response hardening headers. HSTS only over TLS.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
