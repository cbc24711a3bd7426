package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/predictle/predictle/internal/logger"
)

// AdminAuthMiddleware guards the admin subtree with an API key supplied in
// the X-API-Key header. Comparison is constant-time so the key cannot be
// recovered byte by byte through timing.
func AdminAuthMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-Key")
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.FromContext(r.Context()).Warn("Rejected admin request",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
