package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a completed card charge against a booking.
type Payment struct {
	ID            uuid.UUID `json:"_id"`
	BookingID     uuid.UUID `json:"bookingId"`
	Email         string    `json:"email"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"-"`
}
