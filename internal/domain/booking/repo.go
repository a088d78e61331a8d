package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*Booking, error)
	// HasBooking reports whether a booking with the exact
	// (appointmentDate, treatment, email) triple already exists.
	HasBooking(ctx context.Context, date, treatment, email string) (bool, error)
	// MarkPaid records a completed payment on the booking.
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) error
}
