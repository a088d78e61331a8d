package doctors

import "github.com/google/uuid"

// Doctor is an admin-managed directory entry. Specialty references an
// appointment option name; Image is a URL to an externally hosted photo.
type Doctor struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty"`
	Image     string    `json:"image,omitempty"`
}
