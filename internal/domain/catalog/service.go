package catalog

import "context"

type Service struct {
	options OptionRepository
}

func NewService(options OptionRepository) *Service {
	return &Service{options: options}
}

// Options returns the catalog with each option's slots reduced to those
// still free on the given date, computed in application code.
func (s *Service) Options(ctx context.Context, date string) ([]*AppointmentOption, error) {
	opts, err := s.options.List(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := s.options.BookedSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	return subtractBooked(opts, booked), nil
}

// OptionsV2 is the store-side variant of Options. Both must agree on
// output for identical inputs.
func (s *Service) OptionsV2(ctx context.Context, date string) ([]*AppointmentOption, error) {
	return s.options.ListAvailable(ctx, date)
}

func (s *Service) Specialties(ctx context.Context) ([]*Specialty, error) {
	return s.options.ListNames(ctx)
}

// subtractBooked removes each treatment's booked slots from its option's
// slot list, preserving catalog order. Who owns a booking is irrelevant:
// slots are shared, first come first served.
func subtractBooked(opts []*AppointmentOption, bookedByTreatment map[string][]string) []*AppointmentOption {
	out := make([]*AppointmentOption, 0, len(opts))
	for _, opt := range opts {
		taken := make(map[string]bool, len(bookedByTreatment[opt.Name]))
		for _, slot := range bookedByTreatment[opt.Name] {
			taken[slot] = true
		}

		remaining := make([]string, 0, len(opt.Slots))
		for _, slot := range opt.Slots {
			if !taken[slot] {
				remaining = append(remaining, slot)
			}
		}

		out = append(out, &AppointmentOption{
			ID:    opt.ID,
			Name:  opt.Name,
			Price: opt.Price,
			Slots: remaining,
		})
	}
	return out
}
