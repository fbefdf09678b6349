package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/rpggio/workbench/internal/domain/timeledger"
)

// toolRegistry binds tool handlers to the server and files failures in the
// activity log.
type toolRegistry struct {
	server   *sdkmcp.Server
	activity ActivityService
	logger   *slog.Logger
}

// addTool registers a tool whose handler returns a JSON-serializable result.
// Handler errors become tool errors (IsError) carrying the mapped error text.
func addTool[In any](r *toolRegistry, name, description string, run func(context.Context, In) (any, error)) {
	tool := &sdkmcp.Tool{Name: name, Description: description}
	sdkmcp.AddTool(r.server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := run(ctx, in)
		if err != nil {
			r.recordFailure(ctx, name, in, err)
			return nil, nil, toolError(err)
		}
		return nil, out, nil
	})
}

func (r *toolRegistry) recordFailure(ctx context.Context, tool string, in any, err error) {
	kind := activity.TypeToolFailed
	if errors.Is(err, timeledger.ErrDailyCapExceeded) {
		kind = activity.TypeCapRejected
	}
	var projectCode string
	if scoped, ok := in.(projectScoped); ok {
		projectCode = scoped.project()
	}
	r.logger.Info("tool call failed", "tool", tool, "project", projectCode, "error", err)
	r.record(ctx, &activity.ActivityEntry{
		Tool:         tool,
		ProjectCode:  projectCode,
		ActivityType: kind,
		Summary:      err.Error(),
		Details:      marshalDetails(in),
	})
}

func (r *toolRegistry) record(ctx context.Context, entry *activity.ActivityEntry) {
	if r.activity == nil {
		return
	}
	if sessionID := getSessionID(ctx); sessionID != "" {
		entry.SessionID = &sessionID
	}
	if err := r.activity.LogActivity(ctx, entry); err != nil {
		r.logger.Warn("failed to record activity", "tool", entry.Tool, "error", err)
	}
}

func marshalDetails(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	r := &toolRegistry{server: server, activity: svc.Activity, logger: logger}

	registerTimeTools(r, svc.Time)
	registerCalendarTools(r, svc.Calendar)
	registerKnowledgeTools(r, svc.Knowledge)
	registerSecurityTools(r, svc.Security)

	addTool(r, "list_projects", "List the registered project codes with their names and descriptions.",
		func(context.Context, EmptyParams) (any, error) {
			projects := svc.Projects.List()
			return map[string]any{"projects": projects, "totalCount": len(projects)}, nil
		})

	if svc.Activity != nil {
		addTool(r, "get_recent_activity", "Get recent audit log entries: time logged, daily cap rejections and failed tool calls.",
			func(ctx context.Context, in RecentActivityParams) (any, error) {
				opts := activity.ListActivityOptions{
					ProjectCode: in.ProjectCode,
					Tool:        in.Tool,
					Limit:       in.Limit,
				}
				return svc.Activity.GetRecentActivity(ctx, opts)
			})
	}
}

func registerTimeTools(r *toolRegistry, svc TimeService) {
	addTool(r, "log_time", "Log time against a project for a given date. Enforces 8hr daily cap.",
		func(ctx context.Context, in LogTimeParams) (any, error) {
			res, err := svc.LogTime(ctx, timeledger.LogRequest{
				ProjectCode: in.ProjectCode,
				Date:        in.Date,
				Hours:       in.Hours,
				Description: in.Description,
			})
			if err != nil {
				return nil, err
			}
			r.record(ctx, &activity.ActivityEntry{
				Tool:         "log_time",
				ProjectCode:  res.Entry.ProjectCode,
				ActivityType: activity.TypeTimeLogged,
				Summary:      fmt.Sprintf("Logged %.1fh to %s on %s", res.Entry.Hours, res.Entry.ProjectCode, res.Entry.Date),
				Details:      marshalDetails(res),
			})
			return res, nil
		})

	addTool(r, "get_time_entries", "Get time entries for a specific date or date range.",
		func(_ context.Context, in GetTimeEntriesParams) (any, error) {
			return svc.EntriesInRange(in.StartDate, in.EndDate)
		})

	addTool(r, "get_project_time_summary", "Get total time logged per project with percentages.",
		func(_ context.Context, in DateRangeParams) (any, error) {
			return svc.ProjectSummary(in.StartDate, in.EndDate)
		})

	addTool(r, "get_time_for_project", "Get detailed time entries for a specific project.",
		func(_ context.Context, in GetTimeForProjectParams) (any, error) {
			return svc.EntriesForProject(in.ProjectCode, in.StartDate, in.EndDate)
		})

	addTool(r, "get_daily_breakdown", "Get day-by-day breakdown showing how time was divided across projects.",
		func(_ context.Context, in GetDailyBreakdownParams) (any, error) {
			return svc.DailyBreakdown(in.StartDate, in.EndDate)
		})
}

func registerCalendarTools(r *toolRegistry, svc CalendarService) {
	addTool(r, "get_schedule_for_day", "Get all calendar events for a specific date.",
		func(_ context.Context, in ScheduleDayParams) (any, error) {
			return svc.ScheduleForDay(in.Date)
		})

	addTool(r, "get_schedule_for_week", "Get all calendar events for a given week (Monday-Friday).",
		func(_ context.Context, in ScheduleDayParams) (any, error) {
			return svc.ScheduleForWeek(in.Date)
		})

	addTool(r, "get_schedule_for_month", "Get a high-level overview of a calendar month with daily event counts.",
		func(_ context.Context, in ScheduleMonthParams) (any, error) {
			return svc.ScheduleForMonth(in.Year, in.Month)
		})

	addTool(r, "get_upcoming_deadlines", "Get all upcoming deadlines within a specified number of days.",
		func(_ context.Context, in UpcomingDeadlinesParams) (any, error) {
			return svc.UpcomingDeadlines(in.Days)
		})

	addTool(r, "get_free_slots", "Find available time slots for a given date during working hours (08:00-18:00).",
		func(_ context.Context, in FreeSlotsParams) (any, error) {
			return svc.FreeSlots(in.Date, in.MinDurationMinutes)
		})
}

func registerKnowledgeTools(r *toolRegistry, svc KnowledgeService) {
	addTool(r, "search_knowledge_articles", "Search articles by keyword across title, content, and tags. Optionally filter by project or category.",
		func(_ context.Context, in SearchArticlesParams) (any, error) {
			return svc.Search(knowledge.SearchRequest{
				Query:       in.Query,
				ProjectCode: in.ProjectCode,
				Category:    in.Category,
			})
		})

	addTool(r, "get_article", "Get full content of a specific knowledge article by ID (e.g., KB0001).",
		func(_ context.Context, in GetArticleParams) (any, error) {
			return svc.Get(in.ArticleID)
		})

	addTool(r, "list_articles_by_project", "List all knowledge articles for a given project.",
		func(_ context.Context, in ArticlesByProjectParams) (any, error) {
			return svc.ListByProject(in.ProjectCode), nil
		})

	addTool(r, "list_articles_by_category", "List articles filtered by category, optionally scoped to a project.",
		func(_ context.Context, in ArticlesByCategoryParams) (any, error) {
			return svc.ListByCategory(in.Category, in.ProjectCode), nil
		})

	addTool(r, "list_article_categories", "List knowledge base categories with article counts.",
		func(context.Context, EmptyParams) (any, error) {
			return svc.Categories(), nil
		})

	addTool(r, "get_popular_articles", "Get the most viewed articles across all projects.",
		func(_ context.Context, in PopularArticlesParams) (any, error) {
			count := 0
			if in.Count != nil {
				count = *in.Count
			}
			return svc.Popular(count), nil
		})
}

func registerSecurityTools(r *toolRegistry, svc SecurityService) {
	addTool(r, "get_security_issues", "Get security issues with optional filters for project, severity, and status.",
		func(_ context.Context, in SecurityIssuesParams) (any, error) {
			return svc.List(security.ListRequest{
				ProjectCode: in.ProjectCode,
				Severity:    in.Severity,
				Status:      in.Status,
			}), nil
		})

	addTool(r, "get_security_issue_detail", "Get full details of a specific security issue by ID (e.g., SEC-0001).",
		func(_ context.Context, in IssueDetailParams) (any, error) {
			return svc.Detail(in.IssueID)
		})

	addTool(r, "get_security_summary", "Get a high-level security posture summary with risk score.",
		func(_ context.Context, in SecuritySummaryParams) (any, error) {
			return svc.Summary(in.ProjectCode), nil
		})

	addTool(r, "get_issues_by_project", "Get all security issues for a specific project with statistics.",
		func(_ context.Context, in IssuesByProjectParams) (any, error) {
			return svc.IssuesForProject(in.ProjectCode), nil
		})

	addTool(r, "get_critical_and_high_issues", "Quick view of all unresolved Critical and High severity issues.",
		func(context.Context, EmptyParams) (any, error) {
			return svc.CriticalAndHigh(), nil
		})
}
