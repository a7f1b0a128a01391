package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veridex/lookup-gateway/authenticator"
	"github.com/veridex/lookup-gateway/services"
	"github.com/veridex/lookup-gateway/userctx"
)

// RequireAuth verifies the bearer token with the identity oracle,
// provisions the local account on first sight, and places the account
// identity in the request context.
func RequireAuth(verifier authenticator.Verifier, identity services.IdentityService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawToken, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			id, err := verifier.Verify(r.Context(), rawToken)
			if err != nil {
				log.Printf("token verification failed: %v", err)
				unauthorized(w, "invalid token")
				return
			}

			account, err := identity.EnsureAccount(r.Context(), id.SubjectID, id.Email)
			if err != nil {
				log.Printf("failed to ensure account for %s: %v", id.SubjectID, err)
				http.Error(w, "account provisioning failed", http.StatusInternalServerError)
				return
			}

			ctx := userctx.SetAccountID(r.Context(), account.ID)
			ctx = userctx.SetEmail(ctx, id.Email)
			ctx = userctx.SetRequestID(ctx, uuid.NewString())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// unauthorized writes a JSON 401 response
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
