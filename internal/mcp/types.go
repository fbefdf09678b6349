package mcp

// Tool inputs. Fields without omitempty are required by the generated
// input schema.

type LogTimeParams struct {
	ProjectCode string  `json:"projectCode" jsonschema:"project code such as ALPHA"`
	Date        string  `json:"date" jsonschema:"work date in YYYY-MM-DD format"`
	Hours       float64 `json:"hours" jsonschema:"hours worked, 0.5 to 8.0 in 0.5 steps"`
	Description string  `json:"description" jsonschema:"what the time was spent on"`
}

type GetTimeEntriesParams struct {
	StartDate string `json:"startDate" jsonschema:"first date in YYYY-MM-DD format"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"last date in YYYY-MM-DD format, defaults to startDate"`
}

type DateRangeParams struct {
	StartDate string `json:"startDate,omitempty" jsonschema:"first date in YYYY-MM-DD format"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"last date in YYYY-MM-DD format"`
}

type GetTimeForProjectParams struct {
	ProjectCode string `json:"projectCode" jsonschema:"project code such as ALPHA"`
	StartDate   string `json:"startDate,omitempty" jsonschema:"first date in YYYY-MM-DD format"`
	EndDate     string `json:"endDate,omitempty" jsonschema:"last date in YYYY-MM-DD format"`
}

type GetDailyBreakdownParams struct {
	StartDate string `json:"startDate" jsonschema:"first date in YYYY-MM-DD format"`
	EndDate   string `json:"endDate" jsonschema:"last date in YYYY-MM-DD format"`
}

type ScheduleDayParams struct {
	Date string `json:"date,omitempty" jsonschema:"date in YYYY-MM-DD format, defaults to today"`
}

type ScheduleMonthParams struct {
	Year  int `json:"year" jsonschema:"four digit year"`
	Month int `json:"month" jsonschema:"month number, 1 to 12"`
}

type UpcomingDeadlinesParams struct {
	Days *int `json:"days,omitempty" jsonschema:"look-ahead window in days, defaults to 30"`
}

type FreeSlotsParams struct {
	Date               string `json:"date" jsonschema:"date in YYYY-MM-DD format"`
	MinDurationMinutes *int   `json:"minDurationMinutes,omitempty" jsonschema:"shortest slot worth reporting, defaults to 30"`
}

type SearchArticlesParams struct {
	Query       string `json:"query" jsonschema:"keyword matched against title, tags and content"`
	ProjectCode string `json:"projectCode,omitempty" jsonschema:"restrict to one project"`
	Category    string `json:"category,omitempty" jsonschema:"restrict to one category"`
}

type GetArticleParams struct {
	ArticleID string `json:"articleId" jsonschema:"article id such as KB0001"`
}

type ArticlesByProjectParams struct {
	ProjectCode string `json:"projectCode" jsonschema:"project code such as ALPHA"`
}

type ArticlesByCategoryParams struct {
	Category    string `json:"category" jsonschema:"category such as Troubleshooting"`
	ProjectCode string `json:"projectCode,omitempty" jsonschema:"restrict to one project"`
}

type PopularArticlesParams struct {
	Count *int `json:"count,omitempty" jsonschema:"number of articles, defaults to 5, at most 10"`
}

type SecurityIssuesParams struct {
	ProjectCode string `json:"projectCode,omitempty" jsonschema:"restrict to one project"`
	Severity    string `json:"severity,omitempty" jsonschema:"Critical, High, Medium or Low"`
	Status      string `json:"status,omitempty" jsonschema:"Open, InProgress, Resolved or Dismissed"`
}

type IssueDetailParams struct {
	IssueID string `json:"issueId" jsonschema:"issue id such as SEC-0001"`
}

type SecuritySummaryParams struct {
	ProjectCode string `json:"projectCode,omitempty" jsonschema:"restrict to one project"`
}

type IssuesByProjectParams struct {
	ProjectCode string `json:"projectCode" jsonschema:"project code such as ALPHA"`
}

type RecentActivityParams struct {
	ProjectCode string `json:"projectCode,omitempty" jsonschema:"restrict to one project"`
	Tool        string `json:"tool,omitempty" jsonschema:"restrict to one tool name"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum entries, defaults to 20"`
}

type EmptyParams struct{}

// projectScoped is implemented by inputs that name a project, so failures
// can be filed against it in the activity log.
type projectScoped interface {
	project() string
}

func (p LogTimeParams) project() string           { return p.ProjectCode }
func (p GetTimeForProjectParams) project() string { return p.ProjectCode }
func (p SearchArticlesParams) project() string    { return p.ProjectCode }
func (p ArticlesByProjectParams) project() string { return p.ProjectCode }
func (p SecurityIssuesParams) project() string    { return p.ProjectCode }
func (p SecuritySummaryParams) project() string   { return p.ProjectCode }
func (p IssuesByProjectParams) project() string   { return p.ProjectCode }
