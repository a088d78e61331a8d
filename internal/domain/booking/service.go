package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	bookings Repository
}

func NewService(bookings Repository) *Service {
	return &Service{bookings: bookings}
}

// Create inserts a booking unless the patient already holds one for the
// same treatment on the same date. The duplicate case is a negative
// acknowledgment, not an error: the first booking stays untouched.
func (s *Service) Create(ctx context.Context, b *Booking) (*CreateResult, error) {
	if b.AppointmentDate == "" || b.Treatment == "" || b.Slot == "" || b.Email == "" {
		return nil, fmt.Errorf("appointmentDate, treatment, slot and email are required")
	}

	exists, err := s.bookings.HasBooking(ctx, b.AppointmentDate, b.Treatment, b.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return &CreateResult{
			Acknowledged: false,
			Message:      fmt.Sprintf("You already have a booking on %s", b.AppointmentDate),
		}, nil
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return &CreateResult{Acknowledged: true, InsertedID: b.ID}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}
