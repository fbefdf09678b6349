package seed

import (
	"math"

	"github.com/rpggio/workbench/internal/dates"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/timeledger"
)

const workingDays = 30

var entryDescriptions = []string{
	"Sprint planning and backlog grooming",
	"Code review for authentication module",
	"API endpoint development for user service",
	"Bug fix for payment processing timeout",
	"Database migration script development",
	"UI component development for dashboard",
	"Integration testing with third-party services",
	"Documentation update for API endpoints",
	"Performance optimization for search queries",
	"Unit test coverage improvement",
	"Architecture design review session",
	"Deployment pipeline configuration",
	"Security vulnerability assessment",
	"Client meeting and requirements gathering",
	"Refactoring legacy data access layer",
}

// projectWeights biases the first entries of a day toward earlier projects.
var projectWeights = []float64{0.30, 0.25, 0.25, 0.20}

// TimeEntries fills 30 working days starting six weeks before the
// reference date with 3 to 5 entries each, never more than the daily cap.
func (g *Generator) TimeEntries() []timeledger.Entry {
	rng := newSource(timeSeed)
	var entries []timeledger.Entry

	day := g.reference.AddDate(0, 0, -42)
	for worked := 0; worked < workingDays; day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		worked++

		count := 3 + rng.IntN(3)
		remaining := timeledger.DailyCap
		for i := 0; i < count && remaining >= timeledger.MinHours; i++ {
			last := i == count-1
			var p project.Project
			if last {
				p = pick(rng, g.projects)
			} else {
				p = g.projects[weightedIndex(rng.Float64(), len(g.projects))]
			}

			maxHours := math.Min(remaining, 4)
			if last {
				maxHours = remaining
			}
			hours := float64(1+rng.IntN(6)) * timeledger.Increment
			hours = math.Round(math.Max(timeledger.MinHours, math.Min(maxHours, hours))*2) / 2

			entries = append(entries, timeledger.Entry{
				ID:          rng.id(),
				ProjectCode: p.Code,
				ProjectName: p.Name,
				Date:        dates.Format(day),
				Hours:       hours,
				Description: pick(rng, entryDescriptions),
				CreatedAt:   at(day, 8+i, 0),
			})
			remaining -= hours
		}
	}
	return entries
}

// weightedIndex maps roll in [0,1) onto projectWeights. Projects beyond the
// weight table share whatever probability is left.
func weightedIndex(roll float64, n int) int {
	cumulative := 0.0
	for i := 0; i < n && i < len(projectWeights); i++ {
		cumulative += projectWeights[i]
		if roll <= cumulative {
			return i
		}
	}
	return n - 1
}
