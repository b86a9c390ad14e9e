package session

// Route identifies the screen subtree a guard decision resolves to.
type Route string

const (
	RouteLanding   Route = "landing"
	RouteAdmin     Route = "admin"
	RouteCustomer  Route = "customer"
	RouteModerator Route = "moderator"
)

// Decision is the outcome of guarding a role-gated subtree.
type Decision struct {
	// Wait: the store is still Loading; render a neutral placeholder,
	// never a redirect.
	Wait bool

	// Allowed: render the gated subtree.
	Allowed bool

	// RedirectTo is set when neither waiting nor allowed.
	RedirectTo Route
}

// roleRoutes is the fixed role → home route table.
var roleRoutes = map[Role]Route{
	RoleAdmin:     RouteAdmin,
	RoleCustomer:  RouteCustomer,
	RoleModerator: RouteModerator,
}

// HomeRoute maps a role to its dashboard, or the landing route when the
// role maps to nothing.
func HomeRoute(role Role) Route {
	if route, ok := roleRoutes[role]; ok {
		return route
	}
	return RouteLanding
}

// Guard gates a subtree on the session. required == RoleUnknown means
// "any authenticated user". A role mismatch redirects to the route of
// the session's actual role rather than erroring.
func (s *Store) Guard(required Role) Decision {
	switch s.State() {
	case StateUnloaded, StateLoading:
		return Decision{Wait: true}
	case StateAnonymous:
		return Decision{RedirectTo: RouteLanding}
	}
	if required == RoleUnknown {
		return Decision{Allowed: true}
	}
	actual := s.User().Role
	if actual == required {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: HomeRoute(actual)}
}
