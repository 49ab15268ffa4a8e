package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
)

const fullDayMinutes = 8 * 60

// dayAccum collects one calendar date's raw minutes while walking the event
// log.
type dayAccum struct {
	workDate      time.Time
	workedMinutes int
	breakMinutes  int
	anomalies     []timesheet.Anomaly
}

// BuildDays aggregates an employee's clock events into per-day minute
// buckets. Events must arrive in chronological order. A working interval is
// attributed to the calendar date of its clock-in, read in the company's
// timezone, so an overnight shift lands on the day it started.
func BuildDays(events []timeevent.TimeEvent, setting company.Setting) []timesheet.Day {
	loc, err := time.LoadLocation(setting.Timezone)
	if err != nil {
		loc = time.UTC
	}

	interval := time.Duration(setting.RoundingRule.IntervalMinutes()) * time.Minute
	dir := roundDirection(setting.RoundingDirection)

	accums := map[string]*dayAccum{}
	accumFor := func(t time.Time) *dayAccum {
		y, m, d := t.In(loc).Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		key := date.Format(timeutil.DateLayout)
		if acc, ok := accums[key]; ok {
			return acc
		}
		acc := &dayAccum{workDate: date}
		accums[key] = acc
		return acc
	}

	var (
		sessionOpen  bool
		sessionStart time.Time
		sessionDay   *dayAccum
		breakOpen    bool
		breakStart   time.Time
		breakTotal   int
	)

	closeAbandonedSession := func() {
		sessionDay.anomalies = append(sessionDay.anomalies, timesheet.Anomaly{
			Code:     timesheet.AnomalyMissingClockOut,
			Severity: timesheet.SeverityError,
			Message:  fmt.Sprintf("clock-in at %s has no matching clock-out", sessionStart.In(loc).Format("2006-01-02 15:04")),
		})
		sessionOpen = false
		breakOpen = false
		breakTotal = 0
	}

	for _, ev := range events {
		at := timeutil.RoundToInterval(ev.HappenedAt, interval, dir)

		switch ev.Type {
		case timeevent.ClockIn:
			if sessionOpen {
				closeAbandonedSession()
			}
			sessionOpen = true
			sessionStart = at
			sessionDay = accumFor(ev.HappenedAt)
			breakOpen = false
			breakTotal = 0

		case timeevent.BreakIn:
			if !sessionOpen || breakOpen {
				orphan(accumFor(ev.HappenedAt), ev, loc)
				continue
			}
			breakOpen = true
			breakStart = at

		case timeevent.BreakOut:
			if !sessionOpen || !breakOpen {
				orphan(accumFor(ev.HappenedAt), ev, loc)
				continue
			}
			breakOpen = false
			breakTotal += clampMinutes(timeutil.DurationMinutes(breakStart, at))

		case timeevent.ClockOut:
			if !sessionOpen {
				orphan(accumFor(ev.HappenedAt), ev, loc)
				continue
			}
			if breakOpen {
				// Break runs to the clock-out.
				sessionDay.anomalies = append(sessionDay.anomalies, timesheet.Anomaly{
					Code:     timesheet.AnomalyMissingBreakOut,
					Severity: timesheet.SeverityWarn,
					Message:  fmt.Sprintf("break at %s has no matching break-out", breakStart.In(loc).Format("2006-01-02 15:04")),
				})
				breakOpen = false
				breakTotal += clampMinutes(timeutil.DurationMinutes(breakStart, at))
			}

			worked := clampMinutes(timeutil.DurationMinutes(sessionStart, at))
			if setting.BreakPolicy == company.BreakUnpaid {
				worked = clampMinutes(worked - breakTotal)
			}
			sessionDay.workedMinutes += worked
			sessionDay.breakMinutes += breakTotal
			sessionOpen = false
			breakTotal = 0
		}
	}

	if sessionOpen {
		closeAbandonedSession()
	}

	days := make([]timesheet.Day, 0, len(accums))
	for _, acc := range accums {
		regular := acc.workedMinutes
		overtime := 0
		if setting.OvertimeRule == company.OvertimeDailyOver8 && regular > fullDayMinutes {
			overtime = regular - fullDayMinutes
			regular = fullDayMinutes
		}
		days = append(days, timesheet.Day{
			WorkDate:        acc.workDate,
			RegularMinutes:  regular,
			BreakMinutes:    acc.breakMinutes,
			OvertimeMinutes: overtime,
			Anomalies:       acc.anomalies,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].WorkDate.Before(days[j].WorkDate) })
	return days
}

func orphan(acc *dayAccum, ev timeevent.TimeEvent, loc *time.Location) {
	acc.anomalies = append(acc.anomalies, timesheet.Anomaly{
		Code:     timesheet.AnomalyOrphanEvent,
		Severity: timesheet.SeverityWarn,
		Message:  fmt.Sprintf("%s at %s has no open session to apply to", ev.Type, ev.HappenedAt.In(loc).Format("2006-01-02 15:04")),
	})
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	return m
}

func roundDirection(s string) timeutil.RoundDirection {
	switch s {
	case "up":
		return timeutil.RoundUp
	case "down":
		return timeutil.RoundDown
	}
	return timeutil.RoundNearest
}

// ApplyAdjustment recomputes one bucket of a day's minutes with a manual
// correction. DELTA adds to the current value, OVERRIDE replaces it; the
// result never goes below zero.
func ApplyAdjustment(day timesheet.Day, adj timesheet.Adjustment) timesheet.Day {
	value := func(current int) int {
		switch adj.Mode {
		case timesheet.ModeOverride:
			if adj.OverrideMinutes != nil {
				return clampMinutes(*adj.OverrideMinutes)
			}
		case timesheet.ModeDelta:
			if adj.DeltaMinutes != nil {
				return clampMinutes(current + *adj.DeltaMinutes)
			}
		}
		return current
	}

	switch adj.Field {
	case timesheet.FieldRegular:
		day.RegularMinutes = value(day.RegularMinutes)
	case timesheet.FieldBreak:
		day.BreakMinutes = value(day.BreakMinutes)
	case timesheet.FieldOvertime:
		day.OvertimeMinutes = value(day.OvertimeMinutes)
	}
	return day
}
