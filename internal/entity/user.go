package entity

import "strings"

// Role is a catalog role value. The known constants form a closed set;
// values read from storage that match none of them (inconsistent casing
// aside) are kept as-is, so an unrecognized role like "GUEST" still
// round-trips without being collapsed into a known one.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleHR      Role = "HR"
	RoleFactory Role = "Factory"
	RoleSales   Role = "Sales"
	RoleAll     Role = "All"

	// RoleGuest is assigned to identities absent from the users table.
	// It is intentionally outside the known set: a guest matches no
	// allowed-roles entry except the "All" wildcard.
	RoleGuest Role = "GUEST"
)

var knownRoles = []Role{RoleAdmin, RoleHR, RoleFactory, RoleSales, RoleAll}

// ParseRole normalizes a stored role value. Stored roles are inconsistently
// cased, so matching is case-insensitive; a match returns the canonical
// constant, anything else is returned trimmed but otherwise untouched.
func ParseRole(raw string) Role {
	raw = strings.TrimSpace(raw)
	for _, r := range knownRoles {
		if strings.EqualFold(raw, string(r)) {
			return r
		}
	}

	return Role(raw)
}

func (r Role) Equal(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

type User struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// GuestUser is the profile used when the identity is missing from the
// users table (or absent entirely). Guests see only "All" apps.
func GuestUser(email string) User {
	return User{
		Email:    email,
		FullName: "Guest User",
		Role:     RoleGuest,
	}
}
