package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `workbench answers questions about one person's working week across four projects:
ALPHA (CRM modernization), NEXUS (API gateway migration), ORBIT (mobile app redesign) and VAULT (data warehouse pipeline).

Domains and their tools:
- Time ledger: log_time, get_time_entries, get_project_time_summary, get_time_for_project, get_daily_breakdown.
  The ledger is the only thing you can change. A day holds at most 8.0 hours, logged in 0.5 hour steps.
- Calendar (read-only): get_schedule_for_day, get_schedule_for_week, get_schedule_for_month,
  get_upcoming_deadlines, get_free_slots. Working hours are 08:00-18:00.
- Knowledge base (read-only): search_knowledge_articles, get_article, list_articles_by_project,
  list_articles_by_category, list_article_categories, get_popular_articles.
- Security register (read-only): get_security_issues, get_security_issue_detail, get_security_summary,
  get_issues_by_project, get_critical_and_high_issues.
- Housekeeping: list_projects, get_recent_activity.

Rules of engagement:
1) Dates are always YYYY-MM-DD. Omit a date only where the tool says it defaults to today.
2) Before logging time, check the day with get_time_entries; after logging, report the remaining capacity.
3) If a tool returns an error, read its text: it names the problem and how to recover.
4) Summaries are computed on demand; never add hours up yourself when a summary tool exists.

Docs:
- workbench://docs/index
- workbench://docs/time-ledger
- workbench://docs/calendar
- workbench://docs/knowledge
- workbench://docs/security
- workbench://projects (JSON list of project codes)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "workbench://docs/index",
		Name:        "docs_index",
		Title:       "workbench docs index",
		Description: "What each domain covers and which doc to read next.",
		Content: `# workbench: Agent Docs Index

Four independent services share one project registry.

| Domain | Mutable | Doc |
|--------|---------|-----|
| Time ledger | yes (log_time only) | workbench://docs/time-ledger |
| Calendar | no | workbench://docs/calendar |
| Knowledge base | no | workbench://docs/knowledge |
| Security register | no | workbench://docs/security |

## Project codes

Every domain files its data under ALPHA, NEXUS, ORBIT or VAULT. Codes are case-insensitive on input
and always upper case in results. Read workbench://projects or call list_projects for names.

## Errors

Tool errors come back as text starting with a code:

- UNKNOWN_PROJECT: the project code is not registered.
- INVALID_HOURS: hours are outside 0.5-8.0 or not a multiple of 0.5.
- DAILY_CAP_EXCEEDED: the day would go over 8 hours. Nothing was written.
- NOT_FOUND: no article or issue has that id.
- INVALID_DATE / INVALID_ARGUMENT: fix the argument and retry.

Empty results are not errors.
`,
	},
	{
		URI:         "workbench://docs/time-ledger",
		Name:        "docs_time_ledger",
		Title:       "Time ledger",
		Description: "Daily cap, increments and the shape of time summaries.",
		Content: `# Time ledger

## Invariants

- A date never holds more than **8.0** hours across all projects.
- Hours are between 0.5 and 8.0 and a multiple of 0.5.
- A rejected log_time changes nothing.

## Tools

- log_time(projectCode, date, hours, description): returns the entry, the day's new total and the remaining capacity.
- get_time_entries(startDate, endDate?): entries in the range, oldest first. remainingToday is always about today.
- get_project_time_summary(startDate?, endDate?): hours and percentage per project, largest first.
- get_time_for_project(projectCode, startDate?, endDate?): one project's entries.
- get_daily_breakdown(startDate, endDate): one row per day that has entries, split by project.

Percentages are rounded to one decimal place.
`,
	},
	{
		URI:         "workbench://docs/calendar",
		Name:        "docs_calendar",
		Title:       "Calendar",
		Description: "Schedule views, deadlines and free-slot computation.",
		Content: `# Calendar

Event types: Meeting, FocusBlock, Deadline. Recurring events (standup, lunch, Friday retro) have isRecurring=true.

## Views

- get_schedule_for_day(date?): defaults to today. busyHours sums event durations.
- get_schedule_for_week(date?): Monday to Friday of the week containing date.
- get_schedule_for_month(year, month): per-day counts. busiestDay is null for an empty month;
  ties go to the earliest date.
- get_upcoming_deadlines(days?): deadlines from today through today+days (default 30).

## Free slots

get_free_slots(date, minDurationMinutes?) walks the day's events inside 08:00-18:00. Overlapping events
merge; gaps shorter than the threshold (default 30 minutes) are dropped.
`,
	},
	{
		URI:         "workbench://docs/knowledge",
		Name:        "docs_knowledge",
		Title:       "Knowledge base",
		Description: "How search ranks articles and how listings are scoped.",
		Content: `# Knowledge base

## Search ranking

search_knowledge_articles(query, projectCode?, category?) matches the query case-insensitively:

| Where | Score |
|-------|-------|
| title | 10 |
| any tag | 5 |
| content | 1 |

Scores add up. Results are sorted by score, ties keep article order. Each hit carries a 200 character preview.

## Listings

- get_article(articleId): full content, e.g. KB0001.
- list_articles_by_project(projectCode), list_articles_by_category(category, projectCode?).
- list_article_categories(): categories with article counts.
- get_popular_articles(count?): most viewed, default 5, at most 10.
`,
	},
	{
		URI:         "workbench://docs/security",
		Name:        "docs_security",
		Title:       "Security register",
		Description: "Severity and status vocabulary and how the risk score is derived.",
		Content: `# Security register

Severity, most urgent first: Critical, High, Medium, Low.
Status: Open, InProgress, Resolved, Dismissed.

## Risk score

Only Open and InProgress issues count. The risk score is the worst severity among them, or Low when
there are none.

## Tools

- get_security_issues(projectCode?, severity?, status?): Critical first, newest first within a severity.
  An unrecognised severity or status is ignored rather than rejected.
- get_security_issue_detail(issueId): adds daysSinceReported.
- get_security_summary(projectCode?): risk score plus counts by severity, status and project.
- get_issues_by_project(projectCode): issues with per-severity and per-status statistics.
- get_critical_and_high_issues(): unresolved Critical and High issues only.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

const projectsURI = "workbench://projects"

func registerProjectResource(server *sdkmcp.Server, projects ProjectService) error {
	payload, err := json.MarshalIndent(map[string]any{"projects": projects.List()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal projects resource: %w", err)
	}

	server.AddResource(&sdkmcp.Resource{
		URI:         projectsURI,
		Name:        "projects",
		Title:       "Registered projects",
		Description: "Project codes, names and descriptions accepted by every tool.",
		MIMEType:    "application/json",
		Size:        int64(len(payload)),
	}, func(context.Context, *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      projectsURI,
				MIMEType: "application/json",
				Text:     string(payload),
			}},
		}, nil
	})
	return nil
}
