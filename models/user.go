package models

import (
	"time"

	"github.com/google/uuid"
)

// Role controls which routes a user may call
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager
}

// User represents a user entity
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
