// Package guard decides whether the current user may enter a route. A
// guard never returns an error: every check resolves to either passage or
// a redirect target.
package guard

import (
	"github.com/rs/zerolog/log"

	"github.com/ik-mouad/iorecycling-sub000/internal/navigation"
)

// Session is the slice of the login session a guard needs.
type Session interface {
	HasValidCredential() bool
	Roles() []string
}

// Enforcer answers permission checks for a set of subject roles.
type Enforcer interface {
	Can(subjectRoles []string, resource, action string) bool
}

// Decision is the outcome of a guard check. RedirectTo is only set when
// Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allowed() Decision { return Decision{Allow: true} }

func denied(to string) Decision { return Decision{RedirectTo: to} }

// Guard composes the session and the policy enforcer into route checks.
type Guard struct {
	session  Session
	enforcer Enforcer
}

func New(session Session, enforcer Enforcer) *Guard {
	return &Guard{session: session, enforcer: enforcer}
}

// RequireAuthenticated admits any user holding a valid credential and
// sends everyone else to the entry route.
func (g *Guard) RequireAuthenticated() Decision {
	if g.session.HasValidCredential() {
		return allowed()
	}

	return denied(navigation.EntryRoute)
}

// RequirePermission admits a user whose roles grant the resource/action
// pair. An unauthenticated user goes to the entry route; an authenticated
// user without the grant goes to their own landing page.
func (g *Guard) RequirePermission(resource, action string) Decision {
	if !g.session.HasValidCredential() {
		return denied(navigation.EntryRoute)
	}

	roles := g.session.Roles()
	if g.enforcer.Can(roles, resource, action) {
		return allowed()
	}

	log.Debug().
		Strs("roles", roles).
		Str("resource", resource).
		Str("action", action).
		Msg("route permission denied")

	return denied(navigation.LandingForRoles(roles))
}

// CheckRoute resolves a path through the protected route table. Paths
// outside the table are public and always admitted.
func (g *Guard) CheckRoute(path string) Decision {
	route, ok := navigation.Lookup(path)
	if !ok {
		return allowed()
	}

	return g.RequirePermission(route.Resource, route.Action)
}
