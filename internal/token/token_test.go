package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/staynest-backend/internal/token"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
	testUserID        = "507f1f77bcf86cd799439011"
	testEmail         = "guest@example.com"
)

func newService() *token.Service {
	return token.NewService(testAccessSecret, testRefreshSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAndVerifyAccess(t *testing.T) {
	svc := newService()

	tok, err := svc.IssueAccess(testUserID, testEmail)
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	svc := newService()

	tok, err := svc.IssueRefresh(testUserID)
	require.NoError(t, err)

	claims, err := svc.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := newService()

	first, err := svc.IssueRefresh(testUserID)
	require.NoError(t, err)
	second, err := svc.IssueRefresh(testUserID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	svc := newService()

	refresh, err := svc.IssueRefresh(testUserID)
	require.NoError(t, err)

	// Distinct secrets: a refresh token never passes as an access token
	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	svc := newService()
	other := token.NewService("other-secret", testRefreshSecret, 15*time.Minute, time.Hour)

	tok, err := svc.IssueAccess(testUserID, testEmail)
	require.NoError(t, err)

	_, err = other.VerifyAccess(tok)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := token.NewService(testAccessSecret, testRefreshSecret, -time.Minute, time.Hour)

	tok, err := svc.IssueAccess(testUserID, testEmail)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(tok)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	svc := newService()

	_, err := svc.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}
