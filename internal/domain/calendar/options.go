package calendar

import (
	"time"

	"github.com/rpggio/workbench/internal/dates"
)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of "today".
func WithClock(clock dates.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the zone calendar days are cut in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWorkWindow overrides the 08:00-18:00 window used by FreeSlots.
func WithWorkWindow(start, end time.Duration) Option {
	return func(s *Service) {
		if start < end {
			s.workStart, s.workEnd = start, end
		}
	}
}
