package timeledger

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/workbench/internal/dates"
)

const (
	// DailyCap is the most hours that can be logged against one date.
	DailyCap = 8.0
	// MinHours is the smallest loggable block.
	MinHours = 0.5
	// Increment is the grid every entry's hours must sit on.
	Increment = 0.5
)

// Service owns the time entries. LogTime is the only mutation; reads work
// on a copy taken under the read lock.
type Service struct {
	mu       sync.RWMutex
	entries  []Entry
	projects Projects
	clock    dates.Clock
	newID    func() string
	recorder Recorder
	logger   *slog.Logger
}

// NewService creates a ledger validating codes against projects.
func NewService(projects Projects, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		projects: projects,
		clock:    time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// LogRequest defines the inputs for LogTime.
type LogRequest struct {
	ProjectCode string
	Date        string
	Hours       float64
	Description string
}

// LogTime appends an entry if the day has room for it.
func (s *Service) LogTime(ctx context.Context, req LogRequest) (*LogResult, error) {
	proj, err := s.projects.Resolve(req.ProjectCode)
	if err != nil {
		return nil, err
	}
	if err := ValidateHours(req.Hours); err != nil {
		return nil, err
	}
	date, err := dates.Normalize(req.Date)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.totalForDateLocked(date)
	if existing+req.Hours > DailyCap {
		if s.recorder != nil {
			s.recorder.ObserveCapRejection()
		}
		s.logger.WarnContext(ctx, "daily cap exceeded",
			"project", proj.Code, "date", date, "requested", req.Hours, "existing", existing)
		return nil, fmt.Errorf("%w: cannot log %sh; already logged %sh on %s; remaining capacity: %sh",
			ErrDailyCapExceeded, formatHours(req.Hours), formatHours(existing), date, formatHours(DailyCap-existing))
	}

	entry := Entry{
		ID:          s.newID(),
		ProjectCode: proj.Code,
		ProjectName: proj.Name,
		Date:        date,
		Hours:       req.Hours,
		Description: description,
		CreatedAt:   s.clock(),
	}
	s.entries = append(s.entries, entry)

	total := existing + req.Hours
	remaining := DailyCap - total
	if s.recorder != nil {
		s.recorder.ObserveHoursLogged(proj.Code, req.Hours)
	}
	s.logger.InfoContext(ctx, "time logged",
		"id", entry.ID, "project", proj.Code, "date", date, "hours", req.Hours, "daily_total", total)

	return &LogResult{
		Entry:             entry,
		DailyTotal:        total,
		RemainingCapacity: remaining,
		Message: fmt.Sprintf("Logged %sh to %s (%s) on %s: %q. Daily total: %sh / %sh. Remaining capacity: %sh.",
			formatHours(req.Hours), proj.Name, proj.Code, date, description,
			formatHours(total), formatHours(DailyCap), formatHours(remaining)),
	}, nil
}

// ValidateHours checks the range and 0.5 grid.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || hours < MinHours || hours > DailyCap {
		return fmt.Errorf("%w: hours must be between %s and %s", ErrInvalidHours, formatHours(MinHours), strconv.FormatFloat(DailyCap, 'f', 1, 64))
	}
	if math.Mod(hours, Increment) != 0 {
		return fmt.Errorf("%w: hours must be in %s increments", ErrInvalidHours, formatHours(Increment))
	}
	return nil
}

// EntriesInRange lists entries dated within [startDate, endDate]. An empty
// endDate means the single day startDate.
func (s *Service) EntriesInRange(startDate, endDate string) (*RangeResult, error) {
	start, err := dates.Normalize(startDate)
	if err != nil {
		return nil, err
	}
	end := start
	if strings.TrimSpace(endDate) != "" {
		if end, err = dates.Normalize(endDate); err != nil {
			return nil, err
		}
	}

	all := s.snapshot()
	entries := filterEntries(all, "", start, end)
	sortEntries(entries)

	today := dates.Format(s.clock())
	return &RangeResult{
		Entries:        entries,
		TotalHours:     sumHours(entries),
		EntryCount:     len(entries),
		DateRange:      DateRange{Start: start, End: end},
		RemainingToday: DailyCap - sumHours(filterEntries(all, "", today, today)),
	}, nil
}

// ProjectSummary totals hours per project over an optional date range.
func (s *Service) ProjectSummary(startDate, endDate string) (*SummaryResult, error) {
	start, end, err := normalizeBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}

	entries := filterEntries(s.snapshot(), "", start, end)
	total := sumHours(entries)

	summaries := []ProjectTotal{}
	index := map[string]int{}
	for _, e := range entries {
		i, ok := index[e.ProjectCode]
		if !ok {
			i = len(summaries)
			index[e.ProjectCode] = i
			summaries = append(summaries, ProjectTotal{ProjectCode: e.ProjectCode, ProjectName: e.ProjectName})
		}
		summaries[i].TotalHours += e.Hours
		summaries[i].EntryCount++
	}
	for i := range summaries {
		summaries[i].Percentage = percentage(summaries[i].TotalHours, total)
	}
	slices.SortStableFunc(summaries, func(a, b ProjectTotal) int {
		return cmp.Compare(b.TotalHours, a.TotalHours)
	})

	return &SummaryResult{
		Summaries:    summaries,
		TotalHours:   total,
		ProjectCount: len(summaries),
	}, nil
}

// EntriesForProject lists one project's entries over an optional range.
func (s *Service) EntriesForProject(projectCode, startDate, endDate string) (*ProjectEntries, error) {
	proj, err := s.projects.Resolve(projectCode)
	if err != nil {
		return nil, err
	}
	start, end, err := normalizeBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}

	entries := filterEntries(s.snapshot(), proj.Code, start, end)
	sortEntries(entries)

	return &ProjectEntries{
		Project:    ProjectRef{Code: proj.Code, Name: proj.Name},
		Entries:    entries,
		TotalHours: sumHours(entries),
		EntryCount: len(entries),
	}, nil
}

// DailyBreakdown groups the range by day, each day split by project.
func (s *Service) DailyBreakdown(startDate, endDate string) (*BreakdownResult, error) {
	start, err := dates.Normalize(startDate)
	if err != nil {
		return nil, err
	}
	end, err := dates.Normalize(endDate)
	if err != nil {
		return nil, err
	}

	entries := filterEntries(s.snapshot(), "", start, end)

	days := []DayTotal{}
	dayIndex := map[string]int{}
	for _, e := range entries {
		i, ok := dayIndex[e.Date]
		if !ok {
			i = len(days)
			dayIndex[e.Date] = i
			days = append(days, DayTotal{Date: e.Date, Projects: []ProjectHours{}})
		}
		day := &days[i]
		day.TotalHours += e.Hours
		j := slices.IndexFunc(day.Projects, func(p ProjectHours) bool { return p.ProjectCode == e.ProjectCode })
		if j < 0 {
			day.Projects = append(day.Projects, ProjectHours{ProjectCode: e.ProjectCode})
			j = len(day.Projects) - 1
		}
		day.Projects[j].Hours += e.Hours
	}
	slices.SortFunc(days, func(a, b DayTotal) int { return strings.Compare(a.Date, b.Date) })
	for i := range days {
		slices.SortStableFunc(days[i].Projects, func(a, b ProjectHours) int {
			return cmp.Compare(b.Hours, a.Hours)
		})
	}

	return &BreakdownResult{
		Days:       days,
		DateRange:  DateRange{Start: start, End: end},
		TotalHours: sumHours(entries),
		DayCount:   len(days),
	}, nil
}

// TotalForDate returns the hours already logged on date.
func (s *Service) TotalForDate(date string) (float64, error) {
	d, err := dates.Normalize(date)
	if err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalForDateLocked(d), nil
}

func (s *Service) totalForDateLocked(date string) float64 {
	var total float64
	for _, e := range s.entries {
		if e.Date == date {
			total += e.Hours
		}
	}
	return total
}

func (s *Service) snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

func normalizeBounds(startDate, endDate string) (string, string, error) {
	start, err := dates.NormalizeOptional(startDate)
	if err != nil {
		return "", "", err
	}
	end, err := dates.NormalizeOptional(endDate)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

// filterEntries keeps entries for projectCode (any when empty) whose date
// falls in [start, end]; empty bounds are open. Dates are YYYY-MM-DD so
// string comparison orders them correctly.
func filterEntries(entries []Entry, projectCode, start, end string) []Entry {
	out := []Entry{}
	for _, e := range entries {
		if projectCode != "" && !strings.EqualFold(e.ProjectCode, projectCode) {
			continue
		}
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

func sumHours(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

func percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
