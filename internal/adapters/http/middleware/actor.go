package middleware

import (
	"context"
	"net/http"

	"github.com/campusconnect/campus-api/internal/domain"
)

// Identity headers set by the gateway in front of this service. The gateway
// authenticates the user against the external identity provider and forwards
// the verified identity; this service trusts the headers as-is.
const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// actorKey is the context key for the request's actor.
type actorKey struct{}

// WithActor returns a new context with the given actor stored in it.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext extracts the actor from the context. The zero actor is
// returned for unauthenticated requests; handlers that require an identity
// let Actor.Validate reject it.
func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey{}).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

// Actor returns middleware that reads the trusted identity headers into a
// domain.Actor on the request context. A missing role defaults to student so
// that a bare X-Actor-ID identifies an ordinary user.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := domain.Actor{
				ID:   r.Header.Get(headerActorID),
				Role: domain.Role(r.Header.Get(headerActorRole)),
			}
			if actor.ID != "" && actor.Role == "" {
				actor.Role = domain.RoleStudent
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
