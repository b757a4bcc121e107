package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/staynest-backend/internal/middleware"
	"github.com/staynest/staynest-backend/internal/token"
)

const authTestUserID = "507f1f77bcf86cd799439011"

func newGate(tokens *token.Service) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(claims.UserID))
	})
	return middleware.Auth(tokens)(next)
}

func TestAuth_NoCookieHeader(t *testing.T) {
	tokens := token.NewService("a", "r", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	rec := httptest.NewRecorder()

	newGate(tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_CookieHeaderWithoutAccessToken(t *testing.T) {
	tokens := token.NewService("a", "r", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	// Semicolon-and-space delimited cookie list, no accessToken entry
	req.Header.Set("Cookie", "theme=dark; session=abc")
	rec := httptest.NewRecorder()

	newGate(tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := token.NewService("a", "r", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	req.Header.Set("Cookie", "accessToken=garbage")
	rec := httptest.NewRecorder()

	newGate(tokens).ServeHTTP(rec, req)

	// Present but unverifiable: 403, not 401
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := token.NewService("a", "r", -time.Minute, time.Hour)
	tok, err := expired.IssueAccess(authTestUserID, "guest@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	req.Header.Set("Cookie", "accessToken="+tok)
	rec := httptest.NewRecorder()

	newGate(expired).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := token.NewService("other-secret", "r", time.Minute, time.Hour)
	tok, err := issuer.IssueAccess(authTestUserID, "guest@example.com")
	require.NoError(t, err)

	tokens := token.NewService("a", "r", time.Minute, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	req.Header.Set("Cookie", "accessToken="+tok)
	rec := httptest.NewRecorder()

	newGate(tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := token.NewService("a", "r", time.Minute, time.Hour)
	tok, err := tokens.IssueAccess(authTestUserID, "guest@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/get-user-fav", nil)
	req.Header.Set("Cookie", "theme=dark; accessToken="+tok+"; session=abc")
	rec := httptest.NewRecorder()

	newGate(tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, authTestUserID, rec.Body.String())
}
