package calendar

import (
	"fmt"
	"time"
)

// interval is a half-open [start, end) span.
type interval struct {
	start time.Time
	end   time.Time
}

// FreeSlots returns the gaps of at least minDurationMinutes inside the work
// window of date. A nil threshold uses DefaultMinSlotMinutes.
func (s *Service) FreeSlots(date string, minDurationMinutes *int) (*FreeSlots, error) {
	day, err := s.resolveDay(date)
	if err != nil {
		return nil, err
	}
	threshold := DefaultMinSlotMinutes
	if minDurationMinutes != nil {
		threshold = *minDurationMinutes
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: minDurationMinutes must not be negative, got %d", ErrInvalidInput, threshold)
	}

	window := interval{start: wallClock(day, s.workStart), end: wallClock(day, s.workEnd)}
	gaps := sweep(s.eventsOn(day), window, time.Duration(threshold)*time.Minute)

	slots := make([]Slot, 0, len(gaps))
	for _, g := range gaps {
		slots = append(slots, Slot{
			Start:           g.start.Format("15:04"),
			End:             g.end.Format("15:04"),
			DurationMinutes: int(g.end.Sub(g.start) / time.Minute),
		})
	}
	s.logger.Debug("free slots computed", "date", date, "slots", len(slots), "threshold", threshold)

	return &FreeSlots{
		Date:               day.Format("2006-01-02"),
		FreeSlots:          slots,
		TotalFreeSlots:     len(slots),
		MinDurationMinutes: threshold,
	}, nil
}

// wallClock returns the time offset past midnight on day's calendar date as
// read on a wall clock, so 8h is 08:00 even when the day is 23 or 25 hours long.
func wallClock(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(offset/time.Hour), int(offset%time.Hour/time.Minute), 0, 0, day.Location())
}

// sweep walks events in start order with a cursor that only moves forward,
// so overlapping events merge. Events are clipped to window first.
func sweep(events []Event, window interval, minGap time.Duration) []interval {
	gaps := []interval{}
	cursor := window.start
	for _, e := range events {
		busy, ok := clip(e, window)
		if !ok {
			continue
		}
		if busy.start.After(cursor) && busy.start.Sub(cursor) >= minGap {
			gaps = append(gaps, interval{start: cursor, end: busy.start})
		}
		if busy.end.After(cursor) {
			cursor = busy.end
		}
	}
	if cursor.Before(window.end) && window.end.Sub(cursor) >= minGap {
		gaps = append(gaps, interval{start: cursor, end: window.end})
	}
	return gaps
}

// clip trims e to window, reporting false when nothing is left.
func clip(e Event, window interval) (interval, bool) {
	start, end := e.Start, e.End
	if start.Before(window.start) {
		start = window.start
	}
	if end.After(window.end) {
		end = window.end
	}
	if !start.Before(end) {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}
