// Package navigation defines the client route table: the unauthenticated
// entry route, the per-role landing areas and the resource/action pair each
// protected route requires.
package navigation

import (
	"strings"

	"github.com/ik-mouad/iorecycling-sub000/internal/token"
)

// Route paths.
const (
	// EntryRoute is the unauthenticated entry point.
	EntryRoute = "/login"

	// LandingAccounting is where financial/accounting users land.
	LandingAccounting = "/accounting"

	// LandingAdmin is where administrative users land.
	LandingAdmin = "/admin"

	// LandingClient is where general client users land.
	LandingClient = "/client"
)

// authenticatedAreas are the path prefixes that require a session.
var authenticatedAreas = []string{LandingAccounting, LandingAdmin, LandingClient}

// LandingForRoles picks the post-login destination by fixed role priority:
// the accounting role outranks the administrative role, which outranks the
// general client role. Unknown or empty role sets land on the client area.
func LandingForRoles(roles []string) string {
	switch {
	case token.HasRole(roles, token.RoleComptable):
		return LandingAccounting
	case token.HasRole(roles, token.RoleAdmin):
		return LandingAdmin
	default:
		return LandingClient
	}
}

// IsAuthenticatedArea reports whether the path lies under one of the
// authenticated areas.
func IsAuthenticatedArea(path string) bool {
	for _, area := range authenticatedAreas {
		if path == area || strings.HasPrefix(path, area+"/") {
			return true
		}
	}

	return false
}

// Route couples a path with the permission required to enter it.
type Route struct {
	Path     string
	Resource string
	Action   string
}

// Protected is the route table for the catalogue screens.
var Protected = []Route{
	{Path: LandingClient, Resource: "dashboard", Action: "read"},
	{Path: LandingClient + "/pickups", Resource: "pickup", Action: "read"},
	{Path: LandingAdmin, Resource: "dashboard", Action: "read"},
	{Path: LandingAdmin + "/societies", Resource: "society", Action: "read"},
	{Path: LandingAdmin + "/trucks", Resource: "truck", Action: "read"},
	{Path: LandingAdmin + "/destinations", Resource: "destination", Action: "read"},
	{Path: LandingAdmin + "/pickups", Resource: "pickup", Action: "read"},
	{Path: LandingAccounting, Resource: "dashboard", Action: "read"},
	{Path: LandingAccounting + "/sales", Resource: "sale", Action: "read"},
	{Path: LandingAccounting + "/transactions", Resource: "transaction", Action: "read"},
}

// Lookup returns the route entry for the given path.
func Lookup(path string) (Route, bool) {
	for _, r := range Protected {
		if r.Path == path {
			return r, true
		}
	}

	return Route{}, false
}
