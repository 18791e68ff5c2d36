package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSPolicy defines the CORS headers to emit for matching origins.
type CORSPolicy struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// WithCORS adds basic CORS handling. If AllowedOrigins is empty, it is a no-op.
func WithCORS(p CORSPolicy) Middleware {
	if len(p.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	origins := trimAll(p.AllowedOrigins)
	methodsHeader := strings.Join(trimAll(p.AllowedMethods), ", ")
	headersHeader := strings.Join(trimAll(p.AllowedHeaders), ", ")
	maxAgeHeader := ""
	if secs := int(p.MaxAge.Seconds()); secs > 0 {
		maxAgeHeader = strconv.Itoa(secs)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allow := p.resolveOrigin(origin, origins)
			if allow == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			if p.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if methodsHeader != "" {
				h.Set("Access-Control-Allow-Methods", methodsHeader)
			}
			if headersHeader != "" {
				h.Set("Access-Control-Allow-Headers", headersHeader)
			}
			if maxAgeHeader != "" {
				h.Set("Access-Control-Max-Age", maxAgeHeader)
			}
			h.Add("Vary", "Origin")
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			// Preflight ends here.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveOrigin returns the Allow-Origin value to emit, or "" when the origin
// is absent or not allowed. A wildcard entry echoes the origin when
// credentials are allowed, since "*" and credentials cannot be combined.
func (p CORSPolicy) resolveOrigin(origin string, allowed []string) string {
	if origin == "" {
		return ""
	}
	for _, a := range allowed {
		switch {
		case a == "*" && p.AllowCredentials:
			return origin
		case a == "*":
			return "*"
		case strings.EqualFold(a, origin):
			return origin
		}
	}
	return ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
