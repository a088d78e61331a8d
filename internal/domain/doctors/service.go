package doctors

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) Add(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.doctors.Delete(ctx, id)
}
