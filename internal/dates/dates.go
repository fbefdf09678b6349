// Package dates normalises calendar-date arguments to the fixed-width
// YYYY-MM-DD form so range filters can compare them lexicographically.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the only date format stored on entries and events.
const Layout = "2006-01-02"

// ErrInvalidDate indicates a date argument could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// SystemClock returns a Clock reporting wall time in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Parse reads a YYYY-MM-DD date (a trailing time component is tolerated)
// and returns midnight of that day in loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if len(value) > len(Layout) && (value[len(Layout)] == 'T' || value[len(Layout)] == ' ') {
		value = value[:len(Layout)]
	}
	t, err := time.ParseInLocation(Layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, value)
	}
	return t, nil
}

// Normalize validates value and returns it in canonical YYYY-MM-DD form.
func Normalize(value string) (string, error) {
	t, err := Parse(value, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// NormalizeOptional is Normalize for optional bounds; empty stays empty.
func NormalizeOptional(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return Normalize(value)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	a = StartOfDay(a)
	b = StartOfDay(b.In(a.Location()))
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
