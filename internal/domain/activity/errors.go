package activity

import "errors"

var (
	// ErrInvalidInput indicates an entry is missing required fields.
	ErrInvalidInput = errors.New("invalid activity entry")
)
