package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// BearerAuth guards a route with a single static bearer token. The compare
// is constant-time so the token length and prefix do not leak through
// response timing.
func BearerAuth(validToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")

			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"detail": "Invalid or missing authentication token.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
