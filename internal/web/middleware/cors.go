package middleware

import (
	"net/http"
	"os"
	"slices"
	"strings"
)

// allowedOrigins resolves the cross-origin whitelist from WEB_ALLOWED_ORIGINS
// (comma-separated). Empty entries are dropped.
func allowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("WEB_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// originAllowed reports whether origin may call across origins. The card
// frontend usually runs on a localhost dev port, so localhost is always
// accepted.
func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	if host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"); host == "localhost" || strings.HasPrefix(host, "localhost:") {
		return true
	}
	return slices.Contains(allowed, origin)
}

// CORS returns middleware admitting the card frontend from another origin.
// No cookies cross the boundary (the Immich key stays server-side), so
// responses never allow credentials.
func CORS() func(http.Handler) http.Handler {
	allowed := allowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); originAllowed(origin, allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Last-Event-ID")
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders hardens the JSON/SSE surface. The server renders no HTML,
// so the content security policy denies everything.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
