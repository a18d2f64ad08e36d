package models

import (
	"github.com/google/uuid"
)

// User is a directory entry for someone who uploaded documents or filed
// events. Only display fields are exposed to report pages.
type User struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"` // 'owner', 'manager', 'board', 'admin'
}

// Role constants for directory users.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleBoard   = "board"
	RoleAdmin   = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleOwner, RoleManager, RoleBoard, RoleAdmin}

// IsValidRole checks if the given role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
