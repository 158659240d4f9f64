package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/scward0/SaveHaven/internal/apperr"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

// WithUserClaims adds user claims to the context. Exported for tests.
func WithUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims extracts user claims from context.
func GetUserClaims(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*UserClaims)
	return claims, ok
}

// RequireAuth returns the caller's claims or an Unauthenticated error.
func RequireAuth(ctx context.Context) (*UserClaims, error) {
	claims, ok := GetUserClaims(ctx)
	if !ok {
		return nil, apperr.Unauthenticated("user not authenticated")
	}
	return claims, nil
}

// Middleware verifies the Authorization header on every request and stores
// the resulting claims in the request context. Requests without a valid token
// are rejected with 401; the handler chain never sees them. Public endpoints
// are expected to be mounted outside this middleware.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				slog.Warn("token verification failed", "error", err)
				writeUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
		})
	}
}

// LocalDevMiddleware injects a fixed mock identity so the service can run
// against the memory store without Firebase credentials. Never mount this in
// production.
func LocalDevMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &UserClaims{
				UID:      "local-dev-user",
				Email:    "dev@localhost",
				Name:     "Local Dev User",
				Verified: true,
			}
			// Impersonation header lets local tooling act as another user.
			if impersonate := r.Header.Get("X-Debug-Impersonate-User"); impersonate != "" {
				claims = &UserClaims{
					UID:   impersonate,
					Email: impersonate + "@debug.local",
				}
			}
			next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), claims)))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(apperr.CodeUnauthenticated),
		"error": "please sign in",
	})
}
