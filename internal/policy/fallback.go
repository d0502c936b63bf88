package policy

import "github.com/ik-mouad/iorecycling-sub000/internal/token"

// DefaultFallback is the fixed resource → allowed-roles map consulted while
// the rule table is still loading. It is deliberately hard coded and NOT
// derived from the table: the table may agree with it, but the fallback
// never changes at runtime.
func DefaultFallback() map[string][]string {
	return map[string][]string{
		"dashboard":   {token.RoleClient, token.RoleAdmin, token.RoleComptable},
		"society":     {token.RoleAdmin},
		"truck":       {token.RoleAdmin},
		"destination": {token.RoleAdmin},
		"pickup":      {token.RoleClient, token.RoleAdmin},
		"sale":        {token.RoleComptable},
		"transaction": {token.RoleComptable},
	}
}
