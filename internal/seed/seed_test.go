package seed_test

import (
	"testing"
	"time"

	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/timeledger"
	"github.com/rpggio/workbench/internal/seed"
	"github.com/stretchr/testify/require"
)

var reference = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func generate(t *testing.T) *seed.Dataset {
	t.Helper()
	ds, err := seed.New(reference, project.Defaults(), nil).Generate()
	require.NoError(t, err)
	return ds
}

func TestTimeEntries_RespectCap(t *testing.T) {
	ds := generate(t)

	perDay := map[string]float64{}
	countPerDay := map[string]int{}
	for _, e := range ds.TimeEntries {
		require.NoError(t, timeledger.ValidateHours(e.Hours), "entry %s", e.ID)
		perDay[e.Date] += e.Hours
		countPerDay[e.Date]++

		d, err := time.Parse("2006-01-02", e.Date)
		require.NoError(t, err)
		require.NotEqual(t, time.Saturday, d.Weekday())
		require.NotEqual(t, time.Sunday, d.Weekday())
	}

	require.Len(t, perDay, 30)
	for date, total := range perDay {
		require.LessOrEqual(t, total, timeledger.DailyCap, date)
		require.LessOrEqual(t, countPerDay[date], 5, date)
	}

	first := ds.TimeEntries[0]
	require.Equal(t, "2024-05-01", first.Date)
	require.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), first.CreatedAt)
}

func TestEvents_Shape(t *testing.T) {
	ds := generate(t)

	standups := 0
	retros := 0
	for _, e := range ds.Events {
		require.True(t, e.Start.Before(e.End), e.Title)
		require.NotEmpty(t, e.ID)
		require.False(t, e.Start.Before(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)))
		require.True(t, e.Start.Before(time.Date(2024, 7, 13, 0, 0, 0, 0, time.UTC)))

		switch e.Title {
		case "Daily Standup":
			standups++
			require.Len(t, e.Attendees, 5)
		case "Team Retrospective":
			retros++
			require.Equal(t, time.Friday, e.Start.Weekday())
		}
		if !e.IsRecurring {
			require.NotEmpty(t, e.ProjectCode)
		}
		if e.Type == calendar.Deadline {
			require.Equal(t, 17, e.Start.Hour())
		}
	}

	// 2024-05-12 through 2024-07-12 has 45 weekdays, 9 of them Fridays.
	require.Equal(t, 45, standups)
	require.Equal(t, 9, retros)
}

func TestFixtures(t *testing.T) {
	ds := generate(t)

	require.Len(t, ds.Articles, 21)
	for _, a := range ds.Articles {
		require.NotEmpty(t, a.ProjectName)
		require.GreaterOrEqual(t, a.ViewCount, 50)
		require.LessOrEqual(t, a.ViewCount, 500)
		require.False(t, a.LastUpdated.Before(a.CreatedDate), a.ID)
	}
	require.Equal(t, "KB0001", ds.Articles[0].ID)
	require.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), ds.Articles[0].LastUpdated)

	require.Len(t, ds.Issues, 24)
	for _, i := range ds.Issues {
		if i.ResolvedDate != nil {
			require.False(t, i.ResolvedDate.Before(i.ReportedDate), i.ID)
		}
	}
	require.Equal(t, "SEC-0001", ds.Issues[0].ID)
	require.Equal(t, "Customer Search API", ds.Issues[0].AffectedComponent)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t)
	b := generate(t)
	require.Equal(t, a, b)
}

func TestGenerate_UnknownProject(t *testing.T) {
	_, err := seed.New(reference, []project.Project{{Code: "ALPHA", Name: "Project Alpha"}}, nil).Generate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown project")
}
