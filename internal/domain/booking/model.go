package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a patient's claim on one slot of one treatment on one date.
// AppointmentDate is an opaque label compared by equality only; it is
// never parsed or normalized.
type Booking struct {
	ID              uuid.UUID `json:"_id"`
	AppointmentDate string    `json:"appointmentDate"`
	Treatment       string    `json:"treatment"`
	Slot            string    `json:"slot"`
	Patient         string    `json:"patient"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Price           float64   `json:"price"`
	Paid            bool      `json:"paid"`
	TransactionID   string    `json:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"-"`
}

// CreateResult is the outcome of a booking attempt. A duplicate is not
// an error: Acknowledged is false and Message explains why.
type CreateResult struct {
	Acknowledged bool      `json:"acknowledged"`
	InsertedID   uuid.UUID `json:"insertedId,omitempty"`
	Message      string    `json:"message,omitempty"`
}
