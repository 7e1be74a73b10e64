// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can create and manage content across the platform
	RoleEditor Role = "editor"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsAdmin reports whether the role grants unrestricted access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
