package calendar

import "errors"

var (
	// ErrInvalidInput indicates an out-of-range argument such as month 13.
	ErrInvalidInput = errors.New("invalid calendar input")
)
