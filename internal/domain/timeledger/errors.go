package timeledger

import "errors"

var (
	// ErrInvalidHours indicates hours outside [0.5, 8.0] or off the 0.5 grid.
	ErrInvalidHours = errors.New("invalid hours")
	// ErrDailyCapExceeded indicates the entry would push a day past 8 hours.
	ErrDailyCapExceeded = errors.New("daily cap exceeded")
)
