package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/security"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from the bearer token.
type Identity struct {
	UserID int32
	Role   domain.Role
}

func identityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// AuthMiddleware validates the Authorization bearer token and stores the
// caller identity on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, security.ErrInvalidToken)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, security.ErrInvalidToken)
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				respondError(w, err)
				return
			}

			id := Identity{UserID: claims.UserID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

// requireRole wraps a handler so only callers with the given role reach it.
func requireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok || id.Role != role {
			respondError(w, domain.ErrNotAuthorized)
			return
		}
		next(w, r)
	}
}

// SchedulerSecretMiddleware guards the sweep trigger endpoint. The cron
// caller authenticates with a shared secret header instead of a user token.
func SchedulerSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Scheduler-Secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				respondError(w, domain.ErrNotAuthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
