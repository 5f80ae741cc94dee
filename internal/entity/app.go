package entity

import "strings"

// DefaultIconColor is the fallback card color assigned to catalog entries
// that carry neither an icon URL nor a color of their own.
const DefaultIconColor = "bg-blue-600"

type AppItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	IconURL      string `json:"iconUrl,omitempty"`
	IconColor    string `json:"iconColor,omitempty"`
	CategoryID   string `json:"categoryId"`
	AllowedRoles []Role `json:"allowedRoles"`
	IsActive     bool   `json:"isActive"`
}

// SplitRoles parses the comma-separated allowed-roles cell. Duplicates are
// harmless (the slice acts as a set) and blank segments are dropped.
func SplitRoles(raw string) []Role {
	parts := strings.Split(raw, ",")
	roles := make([]Role, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		roles = append(roles, ParseRole(p))
	}

	return roles
}

// VisibleTo reports whether the entry may be shown to a user with the given
// role: the entry must be active and its allowed roles must contain either
// the "All" wildcard or the role itself, compared case-insensitively.
func (a AppItem) VisibleTo(role Role) bool {
	if !a.IsActive {
		return false
	}

	for _, allowed := range a.AllowedRoles {
		if allowed.Equal(RoleAll) || allowed.Equal(role) {
			return true
		}
	}

	return false
}
