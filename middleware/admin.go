package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// RequireAdmin gates the administrative surface behind a static key.
// Admin calls sit in a separate trust boundary: they are neither
// credit-gated nor tied to a user account.
func RequireAdmin(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				forbidden(w, "admin surface disabled")
				return
			}

			provided := r.Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
				forbidden(w, "invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// forbidden writes a JSON 403 response
func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
