package middleware

import (
	"net/http"
	"strings"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/auth"
)

const (
	// ActorIDHeader carries the acting user when token auth is disabled.
	ActorIDHeader = "X-Actor-ID"

	// ActorRoleHeader carries the acting role when token auth is disabled.
	ActorRoleHeader = "X-Actor-Role"
)

// AuthMiddleware resolves the acting user for every request and stores it on
// the request context. With auth enabled it requires a Bearer token issued by
// the identity service; with auth disabled it trusts the actor headers, which
// is only suitable behind a gateway that sets them.
func AuthMiddleware(jwtManager *auth.JWTManager, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				actor := actorFromHeaders(r)
				if actor.ID == "" || !actor.Role.IsValid() {
					http.Error(w, "missing or invalid actor headers", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actor)))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor := claims.Actor()
			if !actor.Role.IsValid() {
				http.Error(w, "unknown role", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), actor)))
		})
	}
}

func actorFromHeaders(r *http.Request) domain.Actor {
	return domain.Actor{
		ID:   r.Header.Get(ActorIDHeader),
		Role: domain.Role(r.Header.Get(ActorRoleHeader)),
	}
}

// RequireRole rejects requests whose actor is not one of the allowed roles.
// Admins pass every check.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := domain.ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if actor.Role != domain.RoleAdmin && !allowed[actor.Role] {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
