package security

import (
	"time"

	"github.com/rpggio/workbench/internal/dates"
)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides "now" for daysSinceReported.
func WithClock(clock dates.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the zone used when counting days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}
