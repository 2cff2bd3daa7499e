package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/labforge/labstock/internal/auth"
	"github.com/labforge/labstock/internal/authz"
	rl "github.com/labforge/labstock/internal/http/rate_limiter"
	"github.com/labforge/labstock/internal/models"
)

type contextKey string

const actorKey = contextKey("actor")

// Actor is the authenticated identity resolved from the access token. It is
// the only ambient state handlers may read; everything else arrives in the
// request.
type Actor struct {
	ID   int
	Name string
	Role models.Role
}

// ActorFromContext returns the authenticated actor, if any.
func ActorFromContext(r *http.Request) (Actor, bool) {
	actor, ok := r.Context().Value(actorKey).(Actor)
	return actor, ok
}

// Auth validates the bearer token and stores the actor in the request
// context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		_, claims, err := auth.TokenClaims(authorization)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		role, _ := claims["role"].(string)
		name, _ := claims["name"].(string)

		actor := Actor{ID: int(sub), Name: name, Role: models.Role(role)}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCapability gates a route on the authz table. Must run after Auth.
func RequireCapability(capability authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r)
			if !ok {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}
			if !authz.Can(actor.Role, capability) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies the per-client limiter, keyed by remote IP.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
