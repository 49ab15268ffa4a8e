package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository persists timesheets and their day/anomaly/adjustment
// children. Create must surface a unique-pair violation as
// ErrTimesheetExists; generation treats that as "already there", not failure.
type TimesheetRepository interface {
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	GetByID(ctx context.Context, id string, companyID string) (Timesheet, error)

	// GetByEmployeeAndPeriod returns nil when no timesheet exists yet.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID, payPeriodID string) (*Timesheet, error)

	ListByCompany(ctx context.Context, companyID string) ([]Timesheet, error)

	UpdateStatus(ctx context.Context, ts Timesheet) error

	// ReplaceDays deletes the sheet's day rows (cascading anomalies) and
	// inserts the given ones. Adjustments survive by being re-created by the
	// caller against the new day rows.
	ReplaceDays(ctx context.Context, timesheetID string, days []Day) ([]Day, error)

	GetDayByDate(ctx context.Context, timesheetID string, workDate time.Time) (Day, error)

	CreateAdjustment(ctx context.Context, adj Adjustment) (Adjustment, error)

	ListAdjustmentsByTimesheet(ctx context.Context, timesheetID string) ([]Adjustment, error)

	// UpdateDayMinutes writes recomputed buckets after adjustments.
	UpdateDayMinutes(ctx context.Context, day Day) error
}

type TimesheetService interface {
	GenerateForPeriod(ctx context.Context, req GenerateRequest) ([]TimesheetResponse, error)
	Get(ctx context.Context, id string) (TimesheetResponse, error)
	List(ctx context.Context) ([]TimesheetResponse, error)
	RebuildDays(ctx context.Context, id string) (TimesheetResponse, error)
	Review(ctx context.Context, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, id string) (TimesheetResponse, error)
	Lock(ctx context.Context, id string) (TimesheetResponse, error)
	AddAdjustment(ctx context.Context, id string, workDate string, req AddAdjustmentRequest) (TimesheetResponse, error)
}
