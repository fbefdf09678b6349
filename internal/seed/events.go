package seed

import (
	"slices"
	"time"

	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/project"
)

var (
	teamMembers     = []string{"Alex Rivera", "Morgan Chen", "Jamie Patel", "Taylor Kim", "Casey Brooks"}
	meetingRooms    = []string{"Zoom", "Room 3B", "Teams", "Room 101"}
	meetingTitles   = []string{"Sprint Planning", "Code Review Session", "Stakeholder Demo", "Architecture Review", "1:1 with Tech Lead", "All Hands"}
	focusTitles     = []string{"Deep Work — Development", "Documentation Sprint", "Bug Triage"}
	deadlineTitles  = []string{"Sprint Deadline", "Release v2.1", "Security Audit Due", "Quarterly Review Prep"}
	meetingHours    = []int{10, 14, 16}
	focusStartHours = []int{10, 14}
)

// Events covers every weekday from one month before to one month after the
// reference date with the recurring team events plus scattered project work.
func (g *Generator) Events() []calendar.Event {
	rng := newSource(calendarSeed)
	var events []calendar.Event

	last := g.reference.AddDate(0, 1, 0)
	for day := g.reference.AddDate(0, -1, 0); !day.After(last); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}

		events = append(events,
			calendar.Event{
				ID:          rng.id(),
				Title:       "Daily Standup",
				Start:       at(day, 9, 0),
				End:         at(day, 9, 15),
				Type:        calendar.Meeting,
				Location:    "Zoom",
				Attendees:   slices.Clone(teamMembers),
				IsRecurring: true,
			},
			calendar.Event{
				ID:          rng.id(),
				Title:       "Lunch Break",
				Start:       at(day, 12, 0),
				End:         at(day, 13, 0),
				Type:        calendar.FocusBlock,
				IsRecurring: true,
			},
		)
		if day.Weekday() == time.Friday {
			events = append(events, calendar.Event{
				ID:          rng.id(),
				Title:       "Team Retrospective",
				Start:       at(day, 15, 0),
				End:         at(day, 16, 0),
				Type:        calendar.Meeting,
				Location:    "Room 3B",
				Attendees:   slices.Clone(teamMembers),
				IsRecurring: true,
			})
		}

		// Roughly two or three project events a week.
		if rng.Float64() < 0.45 {
			events = append(events, scatteredEvent(rng, day, pick(rng, g.projects)))
		}
		if rng.Float64() < 0.25 {
			events = append(events, scatteredEvent(rng, day, pick(rng, g.projects)))
		}
	}
	return events
}

func scatteredEvent(rng *source, day time.Time, p project.Project) calendar.Event {
	e := calendar.Event{
		ID:          rng.id(),
		ProjectCode: p.Code,
		ProjectName: p.Name,
	}

	switch kind := rng.IntN(10); {
	case kind < 5:
		hour := pick(rng, meetingHours)
		minutes := 60
		if rng.IntN(2) == 1 {
			minutes = 30
		}
		attendees := slices.Clone(teamMembers)
		rng.Shuffle(len(attendees), func(i, j int) { attendees[i], attendees[j] = attendees[j], attendees[i] })

		e.Type = calendar.Meeting
		e.Attendees = attendees[:2+rng.IntN(4)]
		e.Title = pick(rng, meetingTitles) + " — " + p.Name
		e.Start = at(day, hour, 0)
		e.End = e.Start.Add(time.Duration(minutes) * time.Minute)
		e.Location = pick(rng, meetingRooms)
		e.Description = "Team sync for " + p.Name
	case kind < 8:
		hour := pick(rng, focusStartHours)
		title := pick(rng, focusTitles)
		hours := 2 + rng.IntN(2)
		if title == "Bug Triage" {
			hours = 1
		}

		e.Type = calendar.FocusBlock
		e.Title = title + " — " + p.Name
		e.Start = at(day, hour, 0)
		e.End = at(day, hour+hours, 0)
		e.Description = "Focus time for " + p.Name
	default:
		e.Type = calendar.Deadline
		e.Title = pick(rng, deadlineTitles) + " — " + p.Name
		e.Start = at(day, 17, 0)
		e.End = at(day, 18, 0)
		e.Description = "Deadline for " + p.Name
	}
	return e
}
