package project

import "errors"

var (
	// ErrUnknownProject indicates the code is not in the registry.
	ErrUnknownProject = errors.New("unknown project code")
)
