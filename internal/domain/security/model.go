package security

import (
	"fmt"
	"strings"
	"time"
)

// Severity orders findings by urgency; Critical sorts first.
type Severity int

const (
	Critical Severity = iota
	High
	Medium
	Low
)

var severityNames = [...]string{
	Critical: "Critical",
	High:     "High",
	Medium:   "Medium",
	Low:      "Low",
}

// Severities lists every severity, most urgent first.
func Severities() []Severity {
	return []Severity{Critical, High, Medium, Low}
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText renders the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(severityNames) {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText accepts a severity name, ignoring case.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = parsed
	return nil
}

// ParseSeverity maps a name to its Severity.
func ParseSeverity(name string) (Severity, bool) {
	i, ok := lookupName(severityNames[:], name)
	return Severity(i), ok
}

// Status is where a finding sits in its lifecycle.
type Status int

const (
	Open Status = iota
	InProgress
	Resolved
	Dismissed
)

var statusNames = [...]string{
	Open:       "Open",
	InProgress: "InProgress",
	Resolved:   "Resolved",
	Dismissed:  "Dismissed",
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{Open, InProgress, Resolved, Dismissed}
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText renders the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText accepts a status name, ignoring case.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = parsed
	return nil
}

// ParseStatus maps a name to its Status.
func ParseStatus(name string) (Status, bool) {
	i, ok := lookupName(statusNames[:], name)
	return Status(i), ok
}

// Unresolved reports whether the finding still counts toward risk.
func (s Status) Unresolved() bool {
	return s == Open || s == InProgress
}

func lookupName(names []string, name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// Issue is an immutable security finding.
type Issue struct {
	ID                string     `json:"id"`
	ProjectCode       string     `json:"projectCode"`
	ProjectName       string     `json:"projectName"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Severity          Severity   `json:"severity"`
	Status            Status     `json:"status"`
	ReportedDate      time.Time  `json:"reportedDate"`
	ResolvedDate      *time.Time `json:"resolvedDate,omitempty"`
	ReportedBy        string     `json:"reportedBy"`
	AssignedTo        string     `json:"assignedTo,omitempty"`
	AffectedComponent string     `json:"affectedComponent"`
	Recommendation    string     `json:"recommendation,omitempty"`
}

// IssueList is a filtered, ordered set of issues.
type IssueList struct {
	Issues     []Issue `json:"issues"`
	TotalCount int     `json:"totalCount"`
}

// IssueDetail adds the age of the finding.
type IssueDetail struct {
	Issue
	DaysSinceReported int `json:"daysSinceReported"`
}

// SeverityCount is one bucket of a severity breakdown.
type SeverityCount struct {
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
}

// StatusCount is one bucket of a status breakdown.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// ProjectRisk is one project's row in a posture summary.
type ProjectRisk struct {
	ProjectCode string `json:"projectCode"`
	ProjectName string `json:"projectName"`
	Total       int    `json:"total"`
	Open        int    `json:"open"`
	InProgress  int    `json:"inProgress"`
	Resolved    int    `json:"resolved"`
	Critical    int    `json:"critical"`
	High        int    `json:"high"`
}

// Summary is the posture view over a scope of issues.
type Summary struct {
	TotalIssues int             `json:"totalIssues"`
	RiskScore   Severity        `json:"riskScore"`
	BySeverity  []SeverityCount `json:"bySeverity"`
	ByStatus    []StatusCount   `json:"byStatus"`
	ByProject   []ProjectRisk   `json:"byProject"`
}

// Statistics counts a project's issues by severity and status.
type Statistics struct {
	Total      int `json:"total"`
	Critical   int `json:"critical"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Dismissed  int `json:"dismissed"`
}

// ProjectIssues lists one project's issues with counts.
type ProjectIssues struct {
	ProjectCode string     `json:"projectCode"`
	Issues      []Issue    `json:"issues"`
	Statistics  Statistics `json:"statistics"`
}

// IssueBrief is the condensed form used by CriticalAndHigh.
type IssueBrief struct {
	ID                string   `json:"id"`
	ProjectCode       string   `json:"projectCode"`
	ProjectName       string   `json:"projectName"`
	Title             string   `json:"title"`
	Severity          Severity `json:"severity"`
	Status            Status   `json:"status"`
	AffectedComponent string   `json:"affectedComponent"`
	AssignedTo        string   `json:"assignedTo,omitempty"`
	DaysSinceReported int      `json:"daysSinceReported"`
}

// UrgentIssues is the result of CriticalAndHigh.
type UrgentIssues struct {
	Issues        []IssueBrief `json:"issues"`
	TotalCount    int          `json:"totalCount"`
	CriticalCount int          `json:"criticalCount"`
	HighCount     int          `json:"highCount"`
}
