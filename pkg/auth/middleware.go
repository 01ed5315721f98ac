package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	ActorKey  ContextKey = "actor"
)

type Middleware struct {
	jwtService JWTServiceInterface
}

func NewMiddleware(jwtService JWTServiceInterface) *Middleware {
	return &Middleware{jwtService: jwtService}
}

func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithDomainError(w, domain.ErrNotAuthenticated)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithDomainError(w, domain.ErrNotAuthenticated)
			return
		}

		actor := domain.Actor{UserID: claims.UserID, Capabilities: []domain.Capability{domain.CapabilitySelf}}
		for _, c := range claims.Capabilities {
			if c != string(domain.CapabilitySelf) {
				actor.Capabilities = append(actor.Capabilities, domain.Capability(c))
			}
		}
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCapability lets the request through when the actor has any of caps.
func RequireCapability(caps ...domain.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				utils.RespondWithDomainError(w, domain.ErrNotAuthenticated)
				return
			}
			for _, c := range caps {
				if actor.Has(c) {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondWithDomainError(w, domain.ErrForbidden)
		})
	}
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(domain.Actor)
	return actor, ok
}

// WithActor is used by tests and background jobs to act as a principal.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID)
	return context.WithValue(ctx, ActorKey, actor)
}
