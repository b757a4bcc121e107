package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/token"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// AccessTokenCookie is the cookie the auth gate reads the access token from.
const AccessTokenCookie = "accessToken"

// Auth guards a route behind the access-token cookie.
//
// Missing credentials (no Cookie header at all, or no accessToken cookie in
// it) answer 401; a token that is present but fails verification answers 403.
// On success the decoded claims are attached to the request context; handlers
// that need full user state re-fetch by the claim's id.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Cookie") == "" {
				writeError(w, httperr.Unauthorized("You are not authenticated"))
				return
			}

			cookie, err := r.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				writeError(w, httperr.Unauthorized("Access token is missing"))
				return
			}

			claims, err := tokens.VerifyAccess(cookie.Value)
			if err != nil {
				writeError(w, httperr.Forbidden("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the access claims the auth gate attached to ctx.
func ClaimsFrom(ctx context.Context) (*token.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*token.AccessClaims)
	return claims, ok
}

func writeError(w http.ResponseWriter, err *httperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	json.NewEncoder(w).Encode(err)
}
