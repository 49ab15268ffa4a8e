package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToInterval(t *testing.T) {
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		t        time.Time
		interval time.Duration
		dir      RoundDirection
		want     time.Time
	}{
		{"already aligned", base, 15 * time.Minute, RoundNearest, base},
		{"nearest down", base.Add(7 * time.Minute), 15 * time.Minute, RoundNearest, base},
		{"nearest up", base.Add(8 * time.Minute), 15 * time.Minute, RoundNearest, base.Add(15 * time.Minute)},
		{"tie rounds up", base.Add(150 * time.Second), 5 * time.Minute, RoundNearest, base.Add(5 * time.Minute)},
		{"up", base.Add(1 * time.Minute), 10 * time.Minute, RoundUp, base.Add(10 * time.Minute)},
		{"down", base.Add(9 * time.Minute), 10 * time.Minute, RoundDown, base},
		{"zero interval is identity", base.Add(7 * time.Minute), 0, RoundNearest, base.Add(7 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToInterval(tt.t, tt.interval, tt.dir)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 480, DurationMinutes(start, start.Add(8*time.Hour)))
	assert.Equal(t, 1, DurationMinutes(start, start.Add(61*time.Second)))
	assert.Equal(t, 0, DurationMinutes(start, start.Add(20*time.Second)))
	assert.Equal(t, -30, DurationMinutes(start, start.Add(-30*time.Minute)))
}

func TestFormatMinutesToHHMM(t *testing.T) {
	assert.Equal(t, "8:30", FormatMinutesToHHMM(510))
	assert.Equal(t, "0:00", FormatMinutesToHHMM(0))
	assert.Equal(t, "0:05", FormatMinutesToHHMM(5))
	assert.Equal(t, "25:00", FormatMinutesToHHMM(1500))
	assert.Equal(t, "-1:15", FormatMinutesToHHMM(-75))
}

func TestMinutesToHours(t *testing.T) {
	assert.InDelta(t, 8.5, MinutesToHours(510), 0.0001)
	assert.InDelta(t, 0, MinutesToHours(0), 0.0001)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("03/09/2026")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 9, 17, 42, 13, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
