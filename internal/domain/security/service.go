package security

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/workbench/internal/dates"
)

// Service answers posture queries over a fixed set of findings.
type Service struct {
	issues []Issue
	clock  dates.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewService creates a register over issues. The slice is copied and
// never modified afterwards.
func NewService(issues []Issue, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		issues: slices.Clone(issues),
		clock:  time.Now,
		loc:    time.Local,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// ListRequest holds the optional filters for List. Severity and Status
// values that do not name a known value are ignored.
type ListRequest struct {
	ProjectCode string
	Severity    string
	Status      string
}

// List filters issues and orders them most urgent first, newest first
// within a severity.
func (s *Service) List(req ListRequest) *IssueList {
	severity, filterSeverity := ParseSeverity(req.Severity)
	status, filterStatus := ParseStatus(req.Status)
	if !filterSeverity && strings.TrimSpace(req.Severity) != "" {
		s.logger.Debug("ignoring unknown severity filter", "severity", req.Severity)
	}
	if !filterStatus && strings.TrimSpace(req.Status) != "" {
		s.logger.Debug("ignoring unknown status filter", "status", req.Status)
	}

	issues := []Issue{}
	for _, issue := range s.inProject(req.ProjectCode) {
		if filterSeverity && issue.Severity != severity {
			continue
		}
		if filterStatus && issue.Status != status {
			continue
		}
		issues = append(issues, issue)
	}
	sortByUrgency(issues)
	return &IssueList{Issues: issues, TotalCount: len(issues)}
}

// Detail returns one issue with its age in days.
func (s *Service) Detail(id string) (*IssueDetail, error) {
	id = strings.TrimSpace(id)
	for _, issue := range s.issues {
		if strings.EqualFold(issue.ID, id) {
			return &IssueDetail{Issue: issue, DaysSinceReported: s.daysSince(issue.ReportedDate)}, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrIssueNotFound, id)
}

// Summary aggregates the issues of one project, or all when projectCode
// is empty.
func (s *Service) Summary(projectCode string) *Summary {
	scope := s.inProject(projectCode)

	bySeverity := make([]SeverityCount, 0, len(severityNames))
	for _, sev := range Severities() {
		bySeverity = append(bySeverity, SeverityCount{Severity: sev})
	}
	byStatus := make([]StatusCount, 0, len(statusNames))
	for _, st := range Statuses() {
		byStatus = append(byStatus, StatusCount{Status: st})
	}

	byProject := []ProjectRisk{}
	index := map[string]int{}
	for _, issue := range scope {
		bySeverity[issue.Severity].Count++
		byStatus[issue.Status].Count++

		i, ok := index[issue.ProjectCode]
		if !ok {
			i = len(byProject)
			index[issue.ProjectCode] = i
			byProject = append(byProject, ProjectRisk{ProjectCode: issue.ProjectCode, ProjectName: issue.ProjectName})
		}
		row := &byProject[i]
		row.Total++
		switch issue.Status {
		case Open:
			row.Open++
		case InProgress:
			row.InProgress++
		case Resolved:
			row.Resolved++
		}
		switch issue.Severity {
		case Critical:
			row.Critical++
		case High:
			row.High++
		}
	}
	slices.SortStableFunc(byProject, func(a, b ProjectRisk) int {
		return cmp.Or(cmp.Compare(b.Critical, a.Critical), cmp.Compare(b.High, a.High))
	})

	return &Summary{
		TotalIssues: len(scope),
		RiskScore:   RiskScore(scope),
		BySeverity:  bySeverity,
		ByStatus:    byStatus,
		ByProject:   byProject,
	}
}

// RiskScore is the worst severity among Open and InProgress issues, or
// Low when none are unresolved.
func RiskScore(issues []Issue) Severity {
	worst := Low
	for _, issue := range issues {
		if issue.Status.Unresolved() && issue.Severity < worst {
			worst = issue.Severity
		}
	}
	return worst
}

// IssuesForProject lists a project's issues with severity and status counts.
// An unknown or blank code yields an empty list.
func (s *Service) IssuesForProject(projectCode string) *ProjectIssues {
	issues := []Issue{}
	if strings.TrimSpace(projectCode) != "" {
		issues = append(issues, s.inProject(projectCode)...)
	}
	sortByUrgency(issues)

	stats := Statistics{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Severity {
		case Critical:
			stats.Critical++
		case High:
			stats.High++
		case Medium:
			stats.Medium++
		case Low:
			stats.Low++
		}
		switch issue.Status {
		case Open:
			stats.Open++
		case InProgress:
			stats.InProgress++
		case Resolved:
			stats.Resolved++
		case Dismissed:
			stats.Dismissed++
		}
	}
	return &ProjectIssues{
		ProjectCode: strings.ToUpper(strings.TrimSpace(projectCode)),
		Issues:      issues,
		Statistics:  stats,
	}
}

// CriticalAndHigh lists unresolved Critical and High issues in List order.
func (s *Service) CriticalAndHigh() *UrgentIssues {
	urgent := []Issue{}
	for _, issue := range s.issues {
		if issue.Status.Unresolved() && issue.Severity <= High {
			urgent = append(urgent, issue)
		}
	}
	sortByUrgency(urgent)

	out := &UrgentIssues{Issues: make([]IssueBrief, 0, len(urgent))}
	for _, issue := range urgent {
		if issue.Severity == Critical {
			out.CriticalCount++
		} else {
			out.HighCount++
		}
		out.Issues = append(out.Issues, IssueBrief{
			ID:                issue.ID,
			ProjectCode:       issue.ProjectCode,
			ProjectName:       issue.ProjectName,
			Title:             issue.Title,
			Severity:          issue.Severity,
			Status:            issue.Status,
			AffectedComponent: issue.AffectedComponent,
			AssignedTo:        issue.AssignedTo,
			DaysSinceReported: s.daysSince(issue.ReportedDate),
		})
	}
	out.TotalCount = len(out.Issues)
	return out
}

// inProject returns the issues of projectCode, or every issue when empty.
// The result may alias s.issues and must not be modified.
func (s *Service) inProject(projectCode string) []Issue {
	code := strings.TrimSpace(projectCode)
	if code == "" {
		return s.issues
	}
	var out []Issue
	for _, issue := range s.issues {
		if strings.EqualFold(issue.ProjectCode, code) {
			out = append(out, issue)
		}
	}
	return out
}

func (s *Service) daysSince(reported time.Time) int {
	return dates.DaysBetween(reported.In(s.loc), s.clock().In(s.loc))
}

func sortByUrgency(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return cmp.Or(cmp.Compare(a.Severity, b.Severity), b.ReportedDate.Compare(a.ReportedDate))
	})
}
