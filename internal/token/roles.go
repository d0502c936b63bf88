package token

// Role names issued by the identity provider.
const (
	// RoleClient is the general client role.
	RoleClient = "CLIENT"

	// RoleAdmin is the administrative role.
	RoleAdmin = "ADMIN"

	// RoleComptable is the financial/accounting role.
	RoleComptable = "COMPTABLE"
)

// HasRole reports whether the role list contains the given role name.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}

	return false
}
