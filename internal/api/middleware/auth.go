package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/airsense/platform/internal/api/types"
	"github.com/airsense/platform/internal/auth"
)

type ctxUserKey string

const (
	UserIDKey ctxUserKey = "user_id"
	EmailKey  ctxUserKey = "email"
	TokenKey  ctxUserKey = "token"
)

func deny(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: code, Message: msg},
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	deny(w, http.StatusUnauthorized, "unauthorized", msg)
}

// VerifyIdentity gates protected routes: it validates the Bearer token,
// rejects revoked tokens, and adds the caller's id and email to the request
// context. Rejections are 401 JSON, never redirects; a failing revocation
// store is 503.
func VerifyIdentity(tokens *auth.TokenIssuer, denylist auth.Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				unauthorized(w, "missing or invalid token")
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])

			revoked, err := denylist.Revoked(r.Context(), tokenStr)
			if err != nil {
				// A store outage is not a revocation. Fail closed, but
				// report it as such.
				deny(w, http.StatusServiceUnavailable, "unavailable", "authorization check unavailable")
				return
			}
			if revoked {
				unauthorized(w, "token has been revoked")
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = context.WithValue(ctx, TokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated user id from context, 0 when absent.
func GetUserID(ctx context.Context) uint {
	if v, ok := ctx.Value(UserIDKey).(uint); ok {
		return v
	}
	return 0
}

// GetEmail returns the authenticated email from context.
func GetEmail(ctx context.Context) string {
	if v, ok := ctx.Value(EmailKey).(string); ok {
		return v
	}
	return ""
}

// GetToken returns the raw bearer token the request presented.
func GetToken(ctx context.Context) string {
	if v, ok := ctx.Value(TokenKey).(string); ok {
		return v
	}
	return ""
}
