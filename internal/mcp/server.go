package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/rpggio/workbench/internal/domain/timeledger"
	"github.com/rpggio/workbench/internal/metrics"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List() []project.Project
}

// TimeService defines time ledger operations needed by MCP.
type TimeService interface {
	LogTime(ctx context.Context, req timeledger.LogRequest) (*timeledger.LogResult, error)
	EntriesInRange(startDate, endDate string) (*timeledger.RangeResult, error)
	ProjectSummary(startDate, endDate string) (*timeledger.SummaryResult, error)
	EntriesForProject(projectCode, startDate, endDate string) (*timeledger.ProjectEntries, error)
	DailyBreakdown(startDate, endDate string) (*timeledger.BreakdownResult, error)
}

// CalendarService defines schedule operations needed by MCP.
type CalendarService interface {
	ScheduleForDay(date string) (*calendar.DaySchedule, error)
	ScheduleForWeek(date string) (*calendar.WeekSchedule, error)
	ScheduleForMonth(year, month int) (*calendar.MonthSchedule, error)
	UpcomingDeadlines(days *int) (*calendar.DeadlineList, error)
	FreeSlots(date string, minDurationMinutes *int) (*calendar.FreeSlots, error)
}

// KnowledgeService defines knowledge base operations needed by MCP.
type KnowledgeService interface {
	Search(req knowledge.SearchRequest) (*knowledge.SearchResult, error)
	Get(id string) (*knowledge.Article, error)
	ListByProject(projectCode string) *knowledge.ProjectListing
	ListByCategory(category, projectCode string) *knowledge.CategoryListing
	Popular(count int) *knowledge.PopularListing
	Categories() *knowledge.CategoryList
}

// SecurityService defines security register operations needed by MCP.
type SecurityService interface {
	List(req security.ListRequest) *security.IssueList
	Detail(id string) (*security.IssueDetail, error)
	Summary(projectCode string) *security.Summary
	IssuesForProject(projectCode string) *security.ProjectIssues
	CriticalAndHigh() *security.UrgentIssues
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) (*activity.RecentActivity, error)
}

// Services contains all domain services needed by MCP. Activity may be nil,
// in which case nothing is audited and get_recent_activity is not offered.
type Services struct {
	Projects  ProjectService
	Time      TimeService
	Calendar  CalendarService
	Knowledge KnowledgeService
	Security  SecurityService
	Activity  ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Version  string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) (*sdkmcp.Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	if err := cfg.Services.validate(); err != nil {
		return nil, err
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "workbench",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)
	if err := registerProjectResource(server, cfg.Services.Projects); err != nil {
		return nil, err
	}

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(toolMetricsMiddleware(cfg.Metrics, cfg.Logger))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server, nil
}

func (s Services) validate() error {
	switch {
	case s.Projects == nil:
		return fmt.Errorf("mcp: project service is required")
	case s.Time == nil:
		return fmt.Errorf("mcp: time service is required")
	case s.Calendar == nil:
		return fmt.Errorf("mcp: calendar service is required")
	case s.Knowledge == nil:
		return fmt.Errorf("mcp: knowledge service is required")
	case s.Security == nil:
		return fmt.Errorf("mcp: security service is required")
	}
	return nil
}
