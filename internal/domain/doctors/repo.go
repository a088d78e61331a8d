package doctors

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	List(ctx context.Context) ([]*Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
