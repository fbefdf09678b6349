package security

import "errors"

var (
	// ErrIssueNotFound indicates no issue has the requested id.
	ErrIssueNotFound = errors.New("issue not found")
)
