package middleware

import (
	"context"
	"net/http"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/handler/http/response"
	"github.com/peoplecore/hr-portal-go/internal/pkg/jwt"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorRequired rejects requests without a valid access token and puts
// the resolved actor on the request context for handlers.
func ActorRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			actor, err := jwtService.ActorFromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid or missing token")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFrom returns the actor stored by ActorRequired. The zero Actor
// means the middleware did not run.
func ActorFrom(ctx context.Context) staff.Actor {
	actor, _ := ctx.Value(actorKey).(staff.Actor)
	return actor
}
