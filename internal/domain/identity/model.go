package identity

import "github.com/google/uuid"

// RoleAdmin is the only role the system distinguishes. An empty role
// means an ordinary patient.
const RoleAdmin = "admin"

type User struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
