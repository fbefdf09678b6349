package calendar

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/workbench/internal/dates"
)

const (
	// DefaultLookAheadDays is the UpcomingDeadlines window when none is given.
	DefaultLookAheadDays = 30

	// maxLookAheadDays bounds the deadline cutoff so date arithmetic cannot overflow.
	maxLookAheadDays = 36500

	// DefaultMinSlotMinutes is the FreeSlots threshold when none is given.
	DefaultMinSlotMinutes = 30
)

// Service answers schedule queries over a fixed set of events.
type Service struct {
	events    []Event
	clock     dates.Clock
	loc       *time.Location
	workStart time.Duration
	workEnd   time.Duration
	logger    *slog.Logger
}

// NewService creates a scheduler over events. The slice is copied and
// ordered by start time; it is never modified afterwards.
func NewService(events []Event, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		events:    slices.Clone(events),
		clock:     time.Now,
		loc:       time.Local,
		workStart: 8 * time.Hour,
		workEnd:   18 * time.Hour,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	slices.SortStableFunc(s.events, func(a, b Event) int { return a.Start.Compare(b.Start) })
	return s
}

// ScheduleForDay lists the events starting on date, today when empty.
func (s *Service) ScheduleForDay(date string) (*DaySchedule, error) {
	day, err := s.resolveDay(date)
	if err != nil {
		return nil, err
	}

	events := s.eventsOn(day)
	summary := DaySummary{}
	for _, e := range events {
		summary.add(e.Type)
		summary.BusyHours += e.Duration().Hours()
	}

	return &DaySchedule{
		Date:    dates.Format(day),
		Events:  events,
		Summary: summary,
	}, nil
}

// ScheduleForWeek lists Monday to Friday of the week containing date.
func (s *Service) ScheduleForWeek(date string) (*WeekSchedule, error) {
	day, err := s.resolveDay(date)
	if err != nil {
		return nil, err
	}
	monday := day.AddDate(0, 0, -((int(day.Weekday()) - 1 + 7) % 7))

	week := &WeekSchedule{
		WeekOf: dates.Format(monday),
		Days:   make([]WeekDay, 0, 5),
	}
	for i := range 5 {
		d := monday.AddDate(0, 0, i)
		events := s.eventsOn(d)
		for _, e := range events {
			week.WeeklySummary.add(e.Type)
		}
		week.Days = append(week.Days, WeekDay{
			Date:      dates.Format(d),
			DayOfWeek: d.Weekday().String(),
			Events:    events,
		})
	}
	return week, nil
}

// ScheduleForMonth counts events per day across a calendar month. Ties for
// the busiest day go to the earliest date.
func (s *Service) ScheduleForMonth(year, month int) (*MonthSchedule, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidInput, month)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrInvalidInput, year)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	next := first.AddDate(0, 1, 0)

	counts := []DayCount{}
	index := map[string]int{}
	total := 0
	for _, e := range s.events {
		start := e.Start.In(s.loc)
		if start.Before(first) || !start.Before(next) {
			continue
		}
		key := dates.Format(start)
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, DayCount{Date: key})
		}
		counts[i].EventCount++
		switch e.Type {
		case Meeting:
			counts[i].Meetings++
		case FocusBlock:
			counts[i].FocusBlocks++
		case Deadline:
			counts[i].Deadlines++
		}
		total++
	}
	slices.SortFunc(counts, func(a, b DayCount) int { return strings.Compare(a.Date, b.Date) })

	var busiest *BusiestDay
	for _, c := range counts {
		if busiest == nil || c.EventCount > busiest.EventCount {
			busiest = &BusiestDay{Date: c.Date, EventCount: c.EventCount}
		}
	}

	return &MonthSchedule{
		Month:       fmt.Sprintf("%04d-%02d", year, month),
		DailyCounts: counts,
		Summary: MonthSummary{
			TotalEvents:         total,
			TotalDaysWithEvents: len(counts),
			BusiestDay:          busiest,
		},
	}, nil
}

// UpcomingDeadlines lists deadlines starting between today and today+days
// inclusive. A nil days uses DefaultLookAheadDays.
func (s *Service) UpcomingDeadlines(days *int) (*DeadlineList, error) {
	lookAhead := DefaultLookAheadDays
	if days != nil {
		lookAhead = *days
	}
	if lookAhead < 0 {
		return nil, fmt.Errorf("%w: days must not be negative, got %d", ErrInvalidInput, lookAhead)
	}

	today := dates.StartOfDay(s.clock().In(s.loc))
	cutoff := today.AddDate(0, 0, min(lookAhead, maxLookAheadDays)+1)

	deadlines := []UpcomingDeadline{}
	for _, e := range s.events {
		if e.Type != Deadline {
			continue
		}
		start := e.Start.In(s.loc)
		if start.Before(today) || !start.Before(cutoff) {
			continue
		}
		deadlines = append(deadlines, UpcomingDeadline{
			ID:          e.ID,
			Title:       e.Title,
			Date:        dates.Format(start),
			ProjectCode: e.ProjectCode,
			ProjectName: e.ProjectName,
			DaysUntil:   dates.DaysBetween(today, start),
		})
	}

	return &DeadlineList{
		Deadlines:     deadlines,
		TotalCount:    len(deadlines),
		LookAheadDays: lookAhead,
	}, nil
}

// resolveDay parses date, defaulting to today, as midnight in s.loc.
func (s *Service) resolveDay(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return dates.StartOfDay(s.clock().In(s.loc)), nil
	}
	return dates.Parse(date, s.loc)
}

// eventsOn returns the events whose start falls on day, by start time.
func (s *Service) eventsOn(day time.Time) []Event {
	next := day.AddDate(0, 0, 1)
	out := []Event{}
	for _, e := range s.events {
		start := e.Start.In(s.loc)
		if !start.Before(day) && start.Before(next) {
			out = append(out, e)
		}
	}
	return out
}
