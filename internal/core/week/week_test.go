package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestComputeWeek(t *testing.T) {
	tests := []struct {
		name  string
		ref   time.Time
		start string
		end   string
	}{
		{"monday", date(2026, time.October, 12), "2026-10-12", "2026-10-18"},
		{"wednesday", date(2026, time.October, 14), "2026-10-12", "2026-10-18"},
		{"saturday", date(2026, time.October, 17), "2026-10-12", "2026-10-18"},
		{"sunday belongs to previous monday", date(2026, time.October, 18), "2026-10-12", "2026-10-18"},
		{"across month boundary", date(2026, time.November, 1), "2026-10-26", "2026-11-01"},
		{"across year boundary", date(2027, time.January, 1), "2026-12-28", "2027-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWeek(tt.ref)
			assert.Equal(t, tt.start, w.StartISO)
			assert.Equal(t, tt.end, w.EndISO)
			assert.Equal(t, time.Monday, w.Start().Weekday())
		})
	}
}

func TestComputeWeek_UsesCalendarDateOfReference(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*60*60)
	// 2026-10-12 00:30 local is still 2026-10-11 in UTC
	ref := time.Date(2026, time.October, 12, 0, 30, 0, 0, loc)

	w := ComputeWeek(ref)
	assert.Equal(t, "2026-10-12", w.StartISO)
}

func TestWednesdayScenario(t *testing.T) {
	ref, err := ParseReference("2026-10-14")
	require.NoError(t, err)

	w := ComputeWeek(ref)
	assert.Equal(t, ref.AddDate(0, 0, -2).Format(ISOLayout), w.StartISO)
	assert.Equal(t, ref.AddDate(0, 0, 4).Format(ISOLayout), w.EndISO)
}

func TestParseReference(t *testing.T) {
	_, err := ParseReference("2026-10-14")
	assert.NoError(t, err)

	_, err = ParseReference("2026-10-14T08:00:00Z")
	assert.NoError(t, err)

	for _, bad := range []string{"", "   ", "yesterday", "2026-13-01", "14/10/2026"} {
		_, err := ParseReference(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestResolve_FallsBackToCurrentWeek(t *testing.T) {
	now := date(2026, time.October, 14)

	assert.Equal(t, Current(now), Resolve("", now))
	assert.Equal(t, Current(now), Resolve("not-a-date", now))
	assert.Equal(t, "2026-10-05", Resolve("2026-10-11", now).StartISO)
}

func TestWindowHelpers(t *testing.T) {
	w := ComputeWeek(date(2026, time.October, 14))

	days := w.Days()
	require.Len(t, days, 7)
	assert.Equal(t, w.StartISO, days[0])
	assert.Equal(t, w.EndISO, days[6])

	assert.True(t, w.Contains("2026-10-12"))
	assert.True(t, w.Contains("2026-10-18"))
	assert.False(t, w.Contains("2026-10-19"))
	assert.False(t, w.Contains("garbage"))

	assert.Equal(t, Window{StartISO: "2026-10-05", EndISO: "2026-10-11"}, w.Previous())
	assert.Equal(t, Window{StartISO: "2026-10-19", EndISO: "2026-10-25"}, w.Next())
}
