package testserver_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/domain/timeledger"
	"github.com/rpggio/workbench/internal/testserver"
)

func TestHTTP_WeekPlanningWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)
	require.NotEmpty(t, session.ID())

	today := testserver.Decode[timeledger.RangeResult](t, session, "get_time_entries", map[string]any{"startDate": "2024-06-12"})
	require.Zero(t, today.EntryCount)
	require.Equal(t, timeledger.DailyCap, today.RemainingToday)

	logged := testserver.Decode[timeledger.LogResult](t, session, "log_time", map[string]any{
		"projectCode": "ORBIT",
		"date":        "2024-06-12",
		"hours":       7.5,
		"description": "Offline sync spike",
	})
	require.Equal(t, 0.5, logged.RemainingCapacity)

	res := testserver.CallTool(t, session, "log_time", map[string]any{
		"projectCode": "ORBIT",
		"date":        "2024-06-12",
		"hours":       1,
		"description": "Overflow",
	})
	require.True(t, res.IsError)

	recent := testserver.Decode[activity.RecentActivity](t, session, "get_recent_activity", map[string]any{"projectCode": "ORBIT"})
	require.Len(t, recent.Entries, 2)
	for _, entry := range recent.Entries {
		require.NotNil(t, entry.SessionID)
		require.Equal(t, session.ID(), *entry.SessionID)
	}

	resp, err := http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `workbench_tool_calls_total{outcome="error",tool="log_time"} 1`)
	require.Contains(t, string(body), "workbench_daily_cap_rejections_total 1")
}

func TestHTTP_IndependentSessions(t *testing.T) {
	ts := testserver.New(t)
	first := ts.Connect(t)
	second := ts.Connect(t)
	require.NotEqual(t, first.ID(), second.ID())

	testserver.Decode[timeledger.LogResult](t, first, "log_time", map[string]any{
		"projectCode": "NEXUS",
		"date":        "2024-06-15",
		"hours":       2,
		"description": "Route audit",
	})

	// The ledger is shared: the second session sees the first session's entry.
	seen := testserver.Decode[timeledger.RangeResult](t, second, "get_time_entries", map[string]any{"startDate": "2024-06-15"})
	require.Equal(t, 1, seen.EntryCount)
}
