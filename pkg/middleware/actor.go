package middleware

import (
	"context"
	"net/http"

	"github.com/gautham-8087/Event-IQ/pkg/model"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	actorKey contextKey = "actor"
)

// ActorContext lifts the caller identity supplied by the upstream
// session layer into the request context. Requests without an identity are
// rejected before they reach a handler.
func ActorContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := model.Actor{
				ID:   r.Header.Get(HeaderActorID),
				Role: r.Header.Get(HeaderActorRole),
			}

			if actor.ID == "" || actor.Role == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Missing actor identity"}`))
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom returns the caller identity stored by ActorContext.
func ActorFrom(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(model.Actor)
	return actor, ok
}
