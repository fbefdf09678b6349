package calendar

import (
	"fmt"
	"strings"
	"time"
)

// EventType classifies a calendar event.
type EventType int

const (
	Meeting EventType = iota
	FocusBlock
	Deadline
)

var eventTypeNames = [...]string{
	Meeting:    "Meeting",
	FocusBlock: "FocusBlock",
	Deadline:   "Deadline",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// MarshalText renders the type by name.
func (t EventType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return nil, fmt.Errorf("unknown event type %d", int(t))
	}
	return []byte(eventTypeNames[t]), nil
}

// UnmarshalText accepts a type name, ignoring case.
func (t *EventType) UnmarshalText(text []byte) error {
	parsed, ok := ParseEventType(string(text))
	if !ok {
		return fmt.Errorf("unknown event type %q", string(text))
	}
	*t = parsed
	return nil
}

// ParseEventType maps a name to its EventType.
func ParseEventType(name string) (EventType, bool) {
	name = strings.TrimSpace(name)
	for i, n := range eventTypeNames {
		if strings.EqualFold(n, name) {
			return EventType(i), true
		}
	}
	return 0, false
}

// Event is an immutable calendar entry. Start is always before End.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Type        EventType `json:"type"`
	ProjectCode string    `json:"projectCode,omitempty"`
	ProjectName string    `json:"projectName,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
}

// Duration is End minus Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// TypeCounts tallies events by type.
type TypeCounts struct {
	TotalEvents int `json:"totalEvents"`
	Meetings    int `json:"meetings"`
	FocusBlocks int `json:"focusBlocks"`
	Deadlines   int `json:"deadlines"`
}

func (c *TypeCounts) add(t EventType) {
	c.TotalEvents++
	switch t {
	case Meeting:
		c.Meetings++
	case FocusBlock:
		c.FocusBlocks++
	case Deadline:
		c.Deadlines++
	}
}

// DaySummary adds busy hours to the per-type counts.
type DaySummary struct {
	TypeCounts
	BusyHours float64 `json:"busyHours"`
}

// DaySchedule is the single-day view.
type DaySchedule struct {
	Date    string     `json:"date"`
	Events  []Event    `json:"events"`
	Summary DaySummary `json:"summary"`
}

// WeekDay is one working day of a week view.
type WeekDay struct {
	Date      string  `json:"date"`
	DayOfWeek string  `json:"dayOfWeek"`
	Events    []Event `json:"events"`
}

// WeekSchedule is the Monday to Friday view.
type WeekSchedule struct {
	WeekOf        string     `json:"weekOf"`
	Days          []WeekDay  `json:"days"`
	WeeklySummary TypeCounts `json:"weeklySummary"`
}

// DayCount is one day of a month view.
type DayCount struct {
	Date        string `json:"date"`
	EventCount  int    `json:"eventCount"`
	Meetings    int    `json:"meetings"`
	FocusBlocks int    `json:"focusBlocks"`
	Deadlines   int    `json:"deadlines"`
}

// BusiestDay is the day with the most events in a month.
type BusiestDay struct {
	Date       string `json:"date"`
	EventCount int    `json:"eventCount"`
}

// MonthSummary totals a month view. BusiestDay is nil for an empty month.
type MonthSummary struct {
	TotalEvents         int         `json:"totalEvents"`
	TotalDaysWithEvents int         `json:"totalDaysWithEvents"`
	BusiestDay          *BusiestDay `json:"busiestDay"`
}

// MonthSchedule is the calendar-month view.
type MonthSchedule struct {
	Month       string       `json:"month"`
	DailyCounts []DayCount   `json:"dailyCounts"`
	Summary     MonthSummary `json:"summary"`
}

// UpcomingDeadline is a deadline annotated with days remaining.
type UpcomingDeadline struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	ProjectCode string `json:"projectCode,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
	DaysUntil   int    `json:"daysUntil"`
}

// DeadlineList is the result of UpcomingDeadlines.
type DeadlineList struct {
	Deadlines     []UpcomingDeadline `json:"deadlines"`
	TotalCount    int                `json:"totalCount"`
	LookAheadDays int                `json:"lookAheadDays"`
}

// Slot is a free gap within the work window, rendered as HH:MM.
type Slot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FreeSlots is the result of FreeSlots.
type FreeSlots struct {
	Date               string `json:"date"`
	FreeSlots          []Slot `json:"freeSlots"`
	TotalFreeSlots     int    `json:"totalFreeSlots"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
}
