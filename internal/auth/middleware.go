package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cortexai/cortex-api/internal/common"
	"github.com/cortexai/cortex-api/internal/models"
	"github.com/rs/zerolog/log"
)

// Resolver turns a bearer token into the user it was issued for.
type Resolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (models.User, error)
}

type contextKey string

// CurrentUserKey is the context key for the authenticated user.
const CurrentUserKey = contextKey("currentUser")

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireUser protects routes: the request proceeds only when its bearer
// token resolves to a stored user, which is then available through
// UserFromContext.
func RequireUser(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				common.WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			user, err := resolver.ResolveCurrentUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, common.ErrAuthentication) {
					log.Debug().Err(err).Msg("Rejected bearer token")
					common.WriteError(w, http.StatusUnauthorized, common.Message(err, "Could not validate credentials"))
					return
				}
				log.Error().Err(err).Msg("Failed to resolve current user")
				common.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by RequireUser.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(models.User)
	return user, ok
}
