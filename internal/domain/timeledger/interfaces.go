package timeledger

import "github.com/rpggio/workbench/internal/domain/project"

// Projects validates project codes.
type Projects interface {
	Resolve(code string) (project.Project, error)
}

// Recorder observes ledger mutations. Implemented by the metrics package.
type Recorder interface {
	ObserveHoursLogged(projectCode string, hours float64)
	ObserveCapRejection()
}
