package catalog

import "github.com/google/uuid"

// AppointmentOption is a catalog entry: a treatment with a fixed price
// and an ordered list of bookable slot labels. Slots are day-shaped
// labels ("10:00 AM - 10:30 AM"), not tied to a date by themselves.
type AppointmentOption struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Slots []string  `json:"slots"`
}

// Specialty is the name-only projection of the catalog used by the
// appointment form's treatment picker.
type Specialty struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}
