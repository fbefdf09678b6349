package timeledger

import "time"

// Entry is one immutable block of logged work.
type Entry struct {
	ID          string    `json:"id"`
	ProjectCode string    `json:"projectCode"`
	ProjectName string    `json:"projectName"`
	Date        string    `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DateRange echoes the bounds a query was evaluated over.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// LogResult confirms an accepted entry.
type LogResult struct {
	Entry             Entry   `json:"entry"`
	DailyTotal        float64 `json:"dailyTotal"`
	RemainingCapacity float64 `json:"remainingCapacity"`
	Message           string  `json:"message"`
}

// RangeResult lists entries between two dates.
type RangeResult struct {
	Entries        []Entry   `json:"entries"`
	TotalHours     float64   `json:"totalHours"`
	EntryCount     int       `json:"entryCount"`
	DateRange      DateRange `json:"dateRange"`
	RemainingToday float64   `json:"remainingToday"`
}

// ProjectTotal is one row of a project summary.
type ProjectTotal struct {
	ProjectCode string  `json:"projectCode"`
	ProjectName string  `json:"projectName"`
	TotalHours  float64 `json:"totalHours"`
	Percentage  float64 `json:"percentage"`
	EntryCount  int     `json:"entryCount"`
}

// SummaryResult is the per-project split of logged hours.
type SummaryResult struct {
	Summaries    []ProjectTotal `json:"summaries"`
	TotalHours   float64        `json:"totalHours"`
	ProjectCount int            `json:"projectCount"`
}

// ProjectRef names a project in a result.
type ProjectRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ProjectEntries lists the entries of a single project.
type ProjectEntries struct {
	Project    ProjectRef `json:"project"`
	Entries    []Entry    `json:"entries"`
	TotalHours float64    `json:"totalHours"`
	EntryCount int        `json:"entryCount"`
}

// ProjectHours is a project's share of one day.
type ProjectHours struct {
	ProjectCode string  `json:"projectCode"`
	Hours       float64 `json:"hours"`
}

// DayTotal is one day of a breakdown.
type DayTotal struct {
	Date       string         `json:"date"`
	TotalHours float64        `json:"totalHours"`
	Projects   []ProjectHours `json:"projects"`
}

// BreakdownResult is the day-by-day view of a date range.
type BreakdownResult struct {
	Days       []DayTotal `json:"days"`
	DateRange  DateRange  `json:"dateRange"`
	TotalHours float64    `json:"totalHours"`
	DayCount   int        `json:"dayCount"`
}
