package security_test

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func issue(id, code string, sev security.Severity, status security.Status, reported int) security.Issue {
	return security.Issue{
		ID:                id,
		ProjectCode:       code,
		ProjectName:       "Project " + code,
		Title:             "Finding " + id,
		Severity:          sev,
		Status:            status,
		ReportedDate:      day(reported),
		ReportedBy:        "Scanner",
		AffectedComponent: "api",
	}
}

func newRegister() *security.Service {
	return security.NewService([]security.Issue{
		issue("SEC-0001", "ALPHA", security.High, security.Open, 3),
		issue("SEC-0002", "ALPHA", security.Critical, security.Resolved, 4),
		issue("SEC-0003", "NEXUS", security.Critical, security.Resolved, 5),
		issue("SEC-0004", "NEXUS", security.High, security.Dismissed, 6),
		issue("SEC-0005", "NEXUS", security.Medium, security.Open, 7),
		issue("SEC-0006", "VAULT", security.Critical, security.InProgress, 2),
		issue("SEC-0007", "VAULT", security.High, security.Open, 8),
		issue("SEC-0008", "ALPHA", security.High, security.InProgress, 9),
		issue("SEC-0009", "ORBIT", security.Low, security.Open, 1),
	}, nil,
		security.WithClock(func() time.Time { return time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC) }),
		security.WithLocation(time.UTC),
	)
}

func ids(issues []security.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.ID)
	}
	return out
}

func TestList_Ordering(t *testing.T) {
	list := newRegister().List(security.ListRequest{})
	require.Equal(t, 9, list.TotalCount)
	require.Equal(t, []string{
		"SEC-0003", "SEC-0002", "SEC-0006",
		"SEC-0008", "SEC-0007", "SEC-0004", "SEC-0001",
		"SEC-0005",
		"SEC-0009",
	}, ids(list.Issues))
}

func TestList_Filters(t *testing.T) {
	svc := newRegister()

	list := svc.List(security.ListRequest{ProjectCode: "alpha", Severity: "high"})
	require.Equal(t, []string{"SEC-0008", "SEC-0001"}, ids(list.Issues))

	list = svc.List(security.ListRequest{Status: "InProgress"})
	require.Equal(t, []string{"SEC-0006", "SEC-0008"}, ids(list.Issues))

	list = svc.List(security.ListRequest{ProjectCode: "ZETA"})
	require.NotNil(t, list.Issues)
	require.Zero(t, list.TotalCount)
}

func TestList_UnknownFilterIgnored(t *testing.T) {
	svc := newRegister()

	all := svc.List(security.ListRequest{ProjectCode: "NEXUS"})
	bogus := svc.List(security.ListRequest{ProjectCode: "NEXUS", Severity: "Catastrophic", Status: "Pending"})
	require.Equal(t, ids(all.Issues), ids(bogus.Issues))
	require.Equal(t, 3, bogus.TotalCount)
}

func TestDetail(t *testing.T) {
	svc := newRegister()

	d, err := svc.Detail("sec-0005")
	require.NoError(t, err)
	require.Equal(t, "SEC-0005", d.ID)
	require.Equal(t, 13, d.DaysSinceReported)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"severity":"Medium"`)
	require.Contains(t, string(raw), `"daysSinceReported":13`)
	require.NotContains(t, string(raw), `resolvedDate`)

	_, err = svc.Detail("SEC-9999")
	require.ErrorIs(t, err, security.ErrIssueNotFound)
	require.Contains(t, err.Error(), "SEC-9999")
}

func TestSummary_NexusMedium(t *testing.T) {
	summary := newRegister().Summary("NEXUS")
	require.Equal(t, 3, summary.TotalIssues)
	require.Equal(t, security.Medium, summary.RiskScore)

	raw, err := json.Marshal(summary)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"riskScore":"Medium"`)
}

func TestSummary_AllProjects(t *testing.T) {
	summary := newRegister().Summary("")
	require.Equal(t, 9, summary.TotalIssues)
	require.Equal(t, security.Critical, summary.RiskScore)

	require.Equal(t, []security.SeverityCount{
		{Severity: security.Critical, Count: 3},
		{Severity: security.High, Count: 4},
		{Severity: security.Medium, Count: 1},
		{Severity: security.Low, Count: 1},
	}, summary.BySeverity)
	require.Equal(t, []security.StatusCount{
		{Status: security.Open, Count: 4},
		{Status: security.InProgress, Count: 2},
		{Status: security.Resolved, Count: 2},
		{Status: security.Dismissed, Count: 1},
	}, summary.ByStatus)

	require.Len(t, summary.ByProject, 4)
	require.Equal(t, "ALPHA", summary.ByProject[0].ProjectCode)
	require.Equal(t, security.ProjectRisk{
		ProjectCode: "ALPHA", ProjectName: "Project ALPHA",
		Total: 3, Open: 1, InProgress: 1, Resolved: 1, Critical: 1, High: 2,
	}, summary.ByProject[0])
	// NEXUS and VAULT tie on critical and high; first appearance wins.
	require.Equal(t, "NEXUS", summary.ByProject[1].ProjectCode)
	require.Equal(t, "VAULT", summary.ByProject[2].ProjectCode)
	require.Equal(t, "ORBIT", summary.ByProject[3].ProjectCode)
}

func TestSummary_NoUnresolvedIsLow(t *testing.T) {
	svc := security.NewService([]security.Issue{
		issue("SEC-1", "ALPHA", security.Critical, security.Resolved, 1),
		issue("SEC-2", "ALPHA", security.High, security.Dismissed, 1),
	}, nil)
	require.Equal(t, security.Low, svc.Summary("ALPHA").RiskScore)
	require.Equal(t, security.Low, svc.Summary("ORBIT").RiskScore)
}

func TestRiskScore_MatchesWorstUnresolved(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 300 {
		var issues []security.Issue
		n := rng.IntN(6)
		for range n {
			issues = append(issues, security.Issue{
				Severity: security.Severity(rng.IntN(4)),
				Status:   security.Status(rng.IntN(4)),
			})
		}

		want := security.Low
		for _, sev := range security.Severities() {
			found := false
			for _, i := range issues {
				if i.Severity == sev && (i.Status == security.Open || i.Status == security.InProgress) {
					found = true
					break
				}
			}
			if found {
				want = sev
				break
			}
		}
		require.Equal(t, want, security.RiskScore(issues))
	}
}

func TestIssuesForProject(t *testing.T) {
	res := newRegister().IssuesForProject("alpha")
	require.Equal(t, "ALPHA", res.ProjectCode)
	require.Equal(t, []string{"SEC-0002", "SEC-0008", "SEC-0001"}, ids(res.Issues))
	require.Equal(t, security.Statistics{
		Total: 3, Critical: 1, High: 2, Open: 1, InProgress: 1, Resolved: 1,
	}, res.Statistics)

	empty := newRegister().IssuesForProject("ZETA")
	require.NotNil(t, empty.Issues)
	require.Zero(t, empty.Statistics.Total)
}

func TestIssuesForProject_BlankCode(t *testing.T) {
	for _, code := range []string{"", "   "} {
		res := newRegister().IssuesForProject(code)
		require.Empty(t, res.ProjectCode)
		require.NotNil(t, res.Issues)
		require.Empty(t, res.Issues)
		require.Equal(t, security.Statistics{}, res.Statistics)
	}
}

func TestCriticalAndHigh(t *testing.T) {
	res := newRegister().CriticalAndHigh()
	require.Equal(t, 4, res.TotalCount)
	require.Equal(t, 1, res.CriticalCount)
	require.Equal(t, 3, res.HighCount)

	got := make([]string, 0, len(res.Issues))
	for _, i := range res.Issues {
		got = append(got, i.ID)
	}
	require.Equal(t, []string{"SEC-0006", "SEC-0008", "SEC-0007", "SEC-0001"}, got)
	require.Equal(t, 18, res.Issues[0].DaysSinceReported)
}

func TestEnumNames(t *testing.T) {
	sev, ok := security.ParseSeverity(" critical ")
	require.True(t, ok)
	require.Equal(t, security.Critical, sev)

	_, ok = security.ParseSeverity("")
	require.False(t, ok)

	st, ok := security.ParseStatus("inprogress")
	require.True(t, ok)
	require.Equal(t, security.InProgress, st)

	var decoded security.Issue
	require.NoError(t, json.Unmarshal([]byte(`{"severity":"Low","status":"Dismissed"}`), &decoded))
	require.Equal(t, security.Low, decoded.Severity)
	require.Equal(t, security.Dismissed, decoded.Status)

	require.Error(t, json.Unmarshal([]byte(`{"severity":"Severe"}`), &decoded))
}
