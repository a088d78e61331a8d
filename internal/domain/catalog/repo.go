package catalog

import "context"

type OptionRepository interface {
	// List returns the full catalog in name order.
	List(ctx context.Context) ([]*AppointmentOption, error)
	// ListNames returns the name-only projection in name order.
	ListNames(ctx context.Context) ([]*Specialty, error)
	// ListAvailable returns the catalog with each option's slots reduced
	// to those not booked on the given date. Computed store-side.
	ListAvailable(ctx context.Context, date string) ([]*AppointmentOption, error)
	// BookedSlots returns, per treatment name, the slots already claimed
	// by bookings on the given date.
	BookedSlots(ctx context.Context, date string) (map[string][]string, error)
	Create(ctx context.Context, opt *AppointmentOption) error
	Count(ctx context.Context) (int, error)
}
