package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
)

func utcSetting() company.Setting {
	setting := company.DefaultSetting("co-1")
	setting.Timezone = "UTC"
	return setting
}

func events(dayEvents ...timeevent.TimeEvent) []timeevent.TimeEvent {
	return dayEvents
}

func ev(eventType timeevent.EventType, day, hour, minute int) timeevent.TimeEvent {
	return timeevent.TimeEvent{
		Type:       eventType,
		HappenedAt: time.Date(2026, 1, day, hour, minute, 0, 0, time.UTC),
	}
}

func TestBuildDaysStandardShift(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.BreakIn, 2, 12, 0),
		ev(timeevent.BreakOut, 2, 13, 0),
		ev(timeevent.ClockOut, 2, 17, 0),
	), utcSetting())

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), day.WorkDate)
	assert.Equal(t, 480, day.RegularMinutes)
	assert.Equal(t, 60, day.BreakMinutes)
	assert.Equal(t, 0, day.OvertimeMinutes)
	assert.Empty(t, day.Anomalies)
}

func TestBuildDaysNoEvents(t *testing.T) {
	assert.Empty(t, BuildDays(nil, utcSetting()))
}

func TestBuildDaysPaidBreak(t *testing.T) {
	setting := utcSetting()
	setting.BreakPolicy = company.BreakPaid

	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.BreakIn, 2, 12, 0),
		ev(timeevent.BreakOut, 2, 13, 0),
		ev(timeevent.ClockOut, 2, 17, 0),
	), setting)

	require.Len(t, days, 1)
	assert.Equal(t, 540, days[0].RegularMinutes)
	assert.Equal(t, 60, days[0].BreakMinutes)
}

func TestBuildDaysMissingClockOut(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
	), utcSetting())

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, 0, day.RegularMinutes)
	require.Len(t, day.Anomalies, 1)
	assert.Equal(t, timesheet.AnomalyMissingClockOut, day.Anomalies[0].Code)
	assert.Equal(t, timesheet.SeverityError, day.Anomalies[0].Severity)
}

func TestBuildDaysDoubleClockInAbandonsFirstSession(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.ClockIn, 2, 9, 0),
		ev(timeevent.ClockOut, 2, 17, 0),
	), utcSetting())

	require.Len(t, days, 1)
	day := days[0]
	// The second session counts from its own clock-in.
	assert.Equal(t, 480, day.RegularMinutes)
	require.Len(t, day.Anomalies, 1)
	assert.Equal(t, timesheet.AnomalyMissingClockOut, day.Anomalies[0].Code)
}

func TestBuildDaysMissingBreakOut(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.BreakIn, 2, 12, 0),
		ev(timeevent.ClockOut, 2, 17, 0),
	), utcSetting())

	require.Len(t, days, 1)
	day := days[0]
	// The open break runs to the clock-out.
	assert.Equal(t, 240, day.RegularMinutes)
	assert.Equal(t, 300, day.BreakMinutes)
	require.Len(t, day.Anomalies, 1)
	assert.Equal(t, timesheet.AnomalyMissingBreakOut, day.Anomalies[0].Code)
	assert.Equal(t, timesheet.SeverityWarn, day.Anomalies[0].Severity)
}

func TestBuildDaysOrphanEvents(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockOut, 2, 8, 0),
		ev(timeevent.BreakOut, 2, 9, 0),
	), utcSetting())

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, 0, day.RegularMinutes)
	require.Len(t, day.Anomalies, 2)
	for _, anomaly := range day.Anomalies {
		assert.Equal(t, timesheet.AnomalyOrphanEvent, anomaly.Code)
		assert.Equal(t, timesheet.SeverityWarn, anomaly.Severity)
	}
}

func TestBuildDaysOvertimeDailyOver8(t *testing.T) {
	setting := utcSetting()
	setting.OvertimeRule = company.OvertimeDailyOver8

	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.ClockOut, 2, 18, 30),
	), setting)

	require.Len(t, days, 1)
	assert.Equal(t, 480, days[0].RegularMinutes)
	assert.Equal(t, 150, days[0].OvertimeMinutes)
}

func TestBuildDaysRounding(t *testing.T) {
	setting := utcSetting()
	setting.RoundingRule = company.RoundingNearest15

	// 08:07 rounds down to 08:00, 17:08 rounds up to 17:15.
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 7),
		ev(timeevent.ClockOut, 2, 17, 8),
	), setting)

	require.Len(t, days, 1)
	assert.Equal(t, 555, days[0].RegularMinutes)
}

func TestBuildDaysMultipleSessionsOneDay(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 8, 0),
		ev(timeevent.ClockOut, 2, 12, 0),
		ev(timeevent.ClockIn, 2, 13, 0),
		ev(timeevent.ClockOut, 2, 17, 0),
	), utcSetting())

	require.Len(t, days, 1)
	assert.Equal(t, 480, days[0].RegularMinutes)
	assert.Empty(t, days[0].Anomalies)
}

func TestBuildDaysMultipleDaysSorted(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 3, 8, 0),
		ev(timeevent.ClockOut, 3, 16, 0),
		ev(timeevent.ClockIn, 5, 8, 0),
		ev(timeevent.ClockOut, 5, 12, 0),
	), utcSetting())

	require.Len(t, days, 2)
	assert.Equal(t, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), days[0].WorkDate)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), days[1].WorkDate)
	assert.Equal(t, 480, days[0].RegularMinutes)
	assert.Equal(t, 240, days[1].RegularMinutes)
}

func TestBuildDaysOvernightShiftOnStartDate(t *testing.T) {
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 22, 0),
		ev(timeevent.ClockOut, 3, 6, 0),
	), utcSetting())

	require.Len(t, days, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), days[0].WorkDate)
	assert.Equal(t, 480, days[0].RegularMinutes)
}

func TestBuildDaysTimezoneBucketing(t *testing.T) {
	setting := utcSetting()
	setting.Timezone = "Asia/Manila" // UTC+8

	// 23:00 UTC Jan 2 is 07:00 Jan 3 in Manila.
	days := BuildDays(events(
		ev(timeevent.ClockIn, 2, 23, 0),
		ev(timeevent.ClockOut, 3, 7, 0),
	), setting)

	require.Len(t, days, 1)
	assert.Equal(t, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), days[0].WorkDate)
}

func TestApplyAdjustment(t *testing.T) {
	day := timesheet.Day{RegularMinutes: 480, BreakMinutes: 60, OvertimeMinutes: 30}

	delta := -30
	adjusted := ApplyAdjustment(day, timesheet.Adjustment{
		Field:        timesheet.FieldRegular,
		Mode:         timesheet.ModeDelta,
		DeltaMinutes: &delta,
	})
	assert.Equal(t, 450, adjusted.RegularMinutes)

	override := 45
	adjusted = ApplyAdjustment(day, timesheet.Adjustment{
		Field:           timesheet.FieldBreak,
		Mode:            timesheet.ModeOverride,
		OverrideMinutes: &override,
	})
	assert.Equal(t, 45, adjusted.BreakMinutes)

	// A delta can never push a bucket negative.
	bigDelta := -600
	adjusted = ApplyAdjustment(day, timesheet.Adjustment{
		Field:        timesheet.FieldOvertime,
		Mode:         timesheet.ModeDelta,
		DeltaMinutes: &bigDelta,
	})
	assert.Equal(t, 0, adjusted.OvertimeMinutes)
}
