package identity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert stores the user, keyed by email. An existing user keeps its
	// role; only the name is refreshed.
	Upsert(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// GrantAdmin sets the admin role on the user. Returns the number of
	// rows affected so callers can distinguish a miss.
	GrantAdmin(ctx context.Context, id uuid.UUID) (int64, error)
}
