package timesheet

import "time"

// Timesheet aggregates one employee's time for one pay period. The
// (employee_id, pay_period_id) pair is unique.
type Timesheet struct {
	ID               string
	EmployeeID       string
	PayPeriodID      string
	Status           Status
	GeneratedAt      *time.Time
	ReviewedAt       *time.Time
	ReviewedByUserID *string
	ApprovedAt       *time.Time
	ApprovedByUserID *string
	LockedAt         *time.Time
	LockedByUserID   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Days []Day
}

// TotalRegularMinutes sums the day buckets. Timesheet totals are always
// derived from days, never stored separately.
func (t Timesheet) TotalRegularMinutes() int {
	total := 0
	for _, d := range t.Days {
		total += d.RegularMinutes
	}
	return total
}

func (t Timesheet) TotalOvertimeMinutes() int {
	total := 0
	for _, d := range t.Days {
		total += d.OvertimeMinutes
	}
	return total
}

func (t Timesheet) TotalBreakMinutes() int {
	total := 0
	for _, d := range t.Days {
		total += d.BreakMinutes
	}
	return total
}

// DaysWorked counts days with nonzero regular minutes, the basis for DAILY
// pay.
func (t Timesheet) DaysWorked() int {
	count := 0
	for _, d := range t.Days {
		if d.RegularMinutes > 0 {
			count++
		}
	}
	return count
}

// Day is one calendar date's minute buckets within a timesheet.
type Day struct {
	ID              string
	TimesheetID     string
	WorkDate        time.Time
	RegularMinutes  int
	BreakMinutes    int
	OvertimeMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Anomalies   []Anomaly
	Adjustments []Adjustment
}

// Anomaly is a detected irregularity in a day's clock events.
type Anomaly struct {
	ID             string
	TimesheetDayID string
	Code           string
	Severity       Severity
	Message        string
	MetaJSON       *string
	CreatedAt      time.Time
}

type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Anomaly codes emitted by the day calculator.
const (
	AnomalyMissingClockOut = "MISSING_CLOCK_OUT"
	AnomalyMissingBreakOut = "MISSING_BREAK_OUT"
	AnomalyOrphanEvent     = "ORPHAN_EVENT"
)

// Adjustment is a manual, reasoned correction applied on top of computed
// minutes.
type Adjustment struct {
	ID              string
	TimesheetDayID  string
	Field           AdjustmentField
	Mode            AdjustmentMode
	DeltaMinutes    *int
	OverrideMinutes *int
	Reason          string
	CreatedByUserID string
	CreatedAt       time.Time
}

type AdjustmentField string

const (
	FieldRegular  AdjustmentField = "REGULAR"
	FieldBreak    AdjustmentField = "BREAK"
	FieldOvertime AdjustmentField = "OVERTIME"
)

func (f AdjustmentField) Valid() bool {
	switch f {
	case FieldRegular, FieldBreak, FieldOvertime:
		return true
	}
	return false
}

type AdjustmentMode string

const (
	ModeDelta    AdjustmentMode = "DELTA"
	ModeOverride AdjustmentMode = "OVERRIDE"
)

func (m AdjustmentMode) Valid() bool {
	return m == ModeDelta || m == ModeOverride
}
