package project

import (
	"fmt"
	"strings"
)

// Registry is the read-only list of known projects. It is safe for
// concurrent use because nothing mutates it after construction.
type Registry struct {
	projects []Project
	byCode   map[string]int
}

// NewRegistry builds a registry over projects, keeping their order.
func NewRegistry(projects []Project) *Registry {
	r := &Registry{
		projects: append([]Project(nil), projects...),
		byCode:   make(map[string]int, len(projects)),
	}
	for i, p := range r.projects {
		r.byCode[strings.ToUpper(p.Code)] = i
	}
	return r
}

// NewDefaultRegistry returns a registry over Defaults.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Defaults())
}

// List returns the projects in registry order.
func (r *Registry) List() []Project {
	return append([]Project(nil), r.projects...)
}

// Lookup finds a project by code, ignoring case.
func (r *Registry) Lookup(code string) (Project, bool) {
	i, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Project{}, false
	}
	return r.projects[i], true
}

// Resolve is Lookup that reports a miss as ErrUnknownProject.
func (r *Registry) Resolve(code string) (Project, error) {
	p, ok := r.Lookup(code)
	if !ok {
		return Project{}, fmt.Errorf("%w '%s'; valid codes: %s", ErrUnknownProject, code, strings.Join(r.Codes(), ", "))
	}
	return p, nil
}

// Codes returns the project codes in registry order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.projects))
	for i, p := range r.projects {
		codes[i] = p.Code
	}
	return codes
}

// Name returns the display name for code, or "" when unknown.
func (r *Registry) Name(code string) string {
	p, _ := r.Lookup(code)
	return p.Name
}
