package domain

import "time"

// Role is the fixed capability set an account is registered with.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User models a registered account. Role is immutable after creation.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
