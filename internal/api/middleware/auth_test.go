package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/platform/internal/auth"
)

// brokenDenylist simulates a revocation store outage.
type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Duration) error { return nil }
func (brokenDenylist) Revoked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func protectedEcho(tokens *auth.TokenIssuer, denylist auth.Denylist) http.Handler {
	return VerifyIdentity(tokens, denylist)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestVerifyIdentityAcceptsValidToken(t *testing.T) {
	tokens := auth.NewTokenIssuer([]byte("test-secret"))
	token, err := tokens.Issue(7, "ana@x.com")
	require.NoError(t, err)

	var gotID uint
	var gotEmail string
	h := VerifyIdentity(tokens, auth.NewMemoryDenylist())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), gotID)
	assert.Equal(t, "ana@x.com", gotEmail)
}

func TestVerifyIdentityRejectsRevokedToken(t *testing.T) {
	tokens := auth.NewTokenIssuer([]byte("test-secret"))
	token, err := tokens.Issue(7, "ana@x.com")
	require.NoError(t, err)

	denylist := auth.NewMemoryDenylist()
	require.NoError(t, denylist.Revoke(context.Background(), token, time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedEcho(tokens, denylist).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestVerifyIdentityReportsStoreOutageAsUnavailable(t *testing.T) {
	tokens := auth.NewTokenIssuer([]byte("test-secret"))
	token, err := tokens.Issue(7, "ana@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedEcho(tokens, brokenDenylist{}).ServeHTTP(w, req)

	// Fail closed, but not as a revocation: the caller's token is fine.
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
	assert.NotContains(t, w.Body.String(), "revoked")
}

func TestVerifyIdentityRejectsMissingHeader(t *testing.T) {
	tokens := auth.NewTokenIssuer([]byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	protectedEcho(tokens, auth.NewMemoryDenylist()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
