package session

import "strings"

// Role is the closed role enumeration. Raw backend role strings are
// normalized into it at the boundary and never propagate further.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCustomer  Role = "customer"
	RoleModerator Role = "moderator"
	RoleUnknown   Role = ""
)

// NormalizeRole folds case and synonym variants: any string containing
// "ADMIN" is the admin role, "USER" or "CUSTOMER" the customer role,
// "MODERATOR" the moderator role. This is deliberate leniency for the
// backend's inconsistent spellings (ROLE_ADMIN, ROLE_ROLE_ADMIN,
// ROLE_USER, CUSTOMER, …); new variants get added here, not
// special-cased downstream.
func NormalizeRole(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case r == "":
		return RoleUnknown
	case strings.Contains(r, "ADMIN"):
		return RoleAdmin
	case strings.Contains(r, "USER"), strings.Contains(r, "CUSTOMER"):
		return RoleCustomer
	case strings.Contains(r, "MODERATOR"):
		return RoleModerator
	}
	return RoleUnknown
}

// String returns the normalized spelling.
func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}
