package timeledger

import "github.com/rpggio/workbench/internal/dates"

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for createdAt and "today".
func WithClock(clock dates.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithEntries seeds the ledger. Entries are taken as-is; the seed
// generator is responsible for keeping each day within the cap.
func WithEntries(entries []Entry) Option {
	return func(s *Service) {
		s.entries = append(s.entries, entries...)
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithIDGenerator overrides entry id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}
