package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
//
// A user belongs to exactly one tenant for its whole lifetime; only Active and
// LastLogin change after provisioning.
type User struct {
	ID         string
	Email      string
	Password   string
	Role       Role
	TenantSlug string
	Name       string
	Active     bool
	CreatedAt  time.Time
	LastLogin  *time.Time
}
