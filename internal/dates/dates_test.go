package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize("2024-01-05")
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", got)

	got, err = Normalize(" 2024-03-09T10:00:00 ")
	require.NoError(t, err)
	require.Equal(t, "2024-03-09", got)

	_, err = Normalize("2024-1-5")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = Normalize("2024-02-30")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeOptional(t *testing.T) {
	got, err := NormalizeOptional("")
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = NormalizeOptional("yesterday")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 12, 1, 0, 0, 0, time.UTC)
	require.Equal(t, 3, DaysBetween(a, b))
	require.Equal(t, -3, DaysBetween(b, a))
	require.Equal(t, 0, DaysBetween(a, a))
}
