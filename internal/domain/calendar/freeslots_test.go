package calendar

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func meeting(id string, start, end time.Time) Event {
	return Event{ID: id, Title: id, Start: start, End: end, Type: Meeting}
}

func TestSweep_SingleMeeting(t *testing.T) {
	window := interval{start: at(8, 0), end: at(18, 0)}
	gaps := sweep([]Event{meeting("m", at(10, 0), at(11, 0))}, window, 30*time.Minute)

	require.Equal(t, []interval{
		{start: at(8, 0), end: at(10, 0)},
		{start: at(11, 0), end: at(18, 0)},
	}, gaps)
}

func TestSweep_OverlapsAreAbsorbed(t *testing.T) {
	window := interval{start: at(8, 0), end: at(18, 0)}
	events := []Event{
		meeting("a", at(9, 0), at(12, 0)),
		meeting("b", at(10, 0), at(11, 0)),
		meeting("c", at(11, 30), at(13, 0)),
		meeting("d", at(13, 10), at(14, 0)),
	}
	gaps := sweep(events, window, 30*time.Minute)

	require.Equal(t, []interval{
		{start: at(8, 0), end: at(9, 0)},
		{start: at(14, 0), end: at(18, 0)},
	}, gaps)
}

func TestSweep_ClipsToWindow(t *testing.T) {
	window := interval{start: at(8, 0), end: at(18, 0)}
	events := []Event{
		meeting("early", at(7, 0), at(8, 30)),
		meeting("late", at(17, 30), at(19, 0)),
		meeting("evening", at(19, 0), at(20, 0)),
	}
	gaps := sweep(events, window, 0)

	require.Equal(t, []interval{{start: at(8, 30), end: at(17, 30)}}, gaps)
	for _, g := range gaps {
		require.False(t, g.start.Before(window.start))
		require.False(t, g.end.After(window.end))
	}
}

func TestSweep_FullyBooked(t *testing.T) {
	window := interval{start: at(8, 0), end: at(18, 0)}
	gaps := sweep([]Event{meeting("all", at(6, 0), at(20, 0))}, window, 0)
	require.Empty(t, gaps)
}

// With a zero threshold, free gaps and merged busy spans tile the window.
func TestSweep_PartitionsWindow(t *testing.T) {
	window := interval{start: at(8, 0), end: at(18, 0)}
	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 200 {
		var events []Event
		n := rng.IntN(8)
		for range n {
			start := at(6, 0).Add(time.Duration(rng.IntN(14*4)) * 15 * time.Minute)
			end := start.Add(time.Duration(1+rng.IntN(12)) * 15 * time.Minute)
			events = append(events, meeting("e", start, end))
		}
		slices.SortStableFunc(events, func(a, b Event) int { return a.Start.Compare(b.Start) })

		gaps := sweep(events, window, 0)
		busy := mergedBusy(events, window)

		spans := append(slices.Clone(gaps), busy...)
		slices.SortFunc(spans, func(a, b interval) int { return a.start.Compare(b.start) })

		cursor := window.start
		for _, span := range spans {
			require.True(t, span.start.Equal(cursor), "round %d: gap or overlap at %s", round, cursor.Format("15:04"))
			require.True(t, span.end.After(span.start))
			cursor = span.end
		}
		require.True(t, cursor.Equal(window.end), "round %d: window not covered", round)
	}
}

func mergedBusy(events []Event, window interval) []interval {
	var out []interval
	for _, e := range events {
		iv, ok := clip(e, window)
		if !ok {
			continue
		}
		if n := len(out); n > 0 && !iv.start.After(out[n-1].end) {
			if iv.end.After(out[n-1].end) {
				out[n-1].end = iv.end
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func TestFreeSlots_DaylightSavingChangeover(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	for _, date := range []string{"2024-03-10", "2024-11-03"} {
		day, err := time.ParseInLocation("2006-01-02", date, ny)
		require.NoError(t, err)
		y, m, d := day.Date()
		svc := NewService([]Event{
			meeting("sync", time.Date(y, m, d, 10, 0, 0, 0, ny), time.Date(y, m, d, 11, 0, 0, 0, ny)),
		}, nil, WithLocation(ny))

		res, err := svc.FreeSlots(date, nil)
		require.NoError(t, err)
		require.Equal(t, []Slot{
			{Start: "08:00", End: "10:00", DurationMinutes: 120},
			{Start: "11:00", End: "18:00", DurationMinutes: 420},
		}, res.FreeSlots, date)
	}
}
