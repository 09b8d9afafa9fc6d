// Package gate enforces per-route authentication and role membership.
// Policies are declared at route-registration time in an explicit table
// and are immutable once the server starts serving.
package gate

import (
	"context"
	"net/http"
	"strings"

	"fleetstock/apierr"
	"fleetstock/auth"
	"fleetstock/models"
	"fleetstock/response"
)

// Identity is the authenticated caller, carried in the request context.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  models.Role
}

type identityContextKey struct{}

// IdentityFromContext returns the caller identity set by the gate, or nil
// on public routes.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}

type rule struct {
	public bool
	roles  []models.Role
}

type Gate struct {
	tokens *auth.TokenManager
	routes map[string]rule
}

func New(tokens *auth.TokenManager) *Gate {
	return &Gate{tokens: tokens, routes: make(map[string]rule)}
}

// MarkPublic exempts a route from authentication entirely. Used only by
// login and registration.
func (g *Gate) MarkPublic(route string) {
	g.routes[route] = rule{public: true}
}

// RequireRoles restricts a route to the given roles. An empty role set
// means any authenticated identity. Membership is flat: super_admin does
// not satisfy an admin-only route.
func (g *Gate) RequireRoles(route string, roles ...models.Role) {
	g.routes[route] = rule{roles: roles}
}

// Protect wraps a handler with the policy declared for route. Evaluation
// order is fixed: authentication always precedes the role check, so an
// expired token on a wrong-role request still yields 401, never 403.
func (g *Gate) Protect(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policy := g.routes[route]
		if policy.public {
			next(w, r)
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.WriteError(w, apierr.Unauthenticated("Authentication required"))
			return
		}

		claims, err := g.tokens.Parse(token)
		if err != nil {
			response.WriteError(w, apierr.Unauthenticated("Invalid or expired token"))
			return
		}

		if len(policy.roles) > 0 && !hasRole(policy.roles, claims.Role) {
			response.WriteError(w, apierr.Forbidden())
			return
		}

		identity := &Identity{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		}
		ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
		next(w, r.WithContext(ctx))
	}
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}
	token := value[len(bearer):]
	if token == "" {
		return "", false
	}
	return token, true
}
