package api

import (
	"crypto/subtle"
	"net/http"
)

// apiKeyMiddleware rejects requests whose X-API-Key header does not match
// expectedKey. The comparison is constant time so the key cannot be probed
// byte by byte through response timing.
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	expected := []byte(expectedKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				sendError(w, "missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
				sendError(w, "invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
