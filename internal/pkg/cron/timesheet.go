package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
	timesheetService "github.com/shiftclock/timeclock-backend-go/internal/service/timesheet"
)

// TimesheetJobs refreshes draft timesheets in the background so late kiosk
// events show up without an admin triggering a rebuild by hand.
type TimesheetJobs struct {
	timesheetRepo timesheet.TimesheetRepository
	eventRepo     timeevent.TimeEventRepository
	periodRepo    payperiod.PayPeriodRepository
	settingRepo   company.SettingRepository
	db            *database.DB
}

func NewTimesheetJobs(
	timesheetRepo timesheet.TimesheetRepository,
	eventRepo timeevent.TimeEventRepository,
	periodRepo payperiod.PayPeriodRepository,
	settingRepo company.SettingRepository,
	db *database.DB,
) *TimesheetJobs {
	return &TimesheetJobs{
		timesheetRepo: timesheetRepo,
		eventRepo:     eventRepo,
		periodRepo:    periodRepo,
		settingRepo:   settingRepo,
		db:            db,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("refresh_draft_timesheets", interval, j.RefreshDraftTimesheets)
}

// RefreshDraftTimesheets recomputes day buckets for every DRAFT timesheet in
// an open pay period. Sheets past DRAFT are never touched; reviewed numbers
// only change through an explicit rebuild or adjustment.
func (j *TimesheetJobs) RefreshDraftTimesheets(ctx context.Context) error {
	rows, err := j.db.Pool.Query(ctx, `
		SELECT ts.id, pp.company_id
		FROM timesheets ts
		JOIN pay_periods pp ON pp.id = ts.pay_period_id
		WHERE ts.status = 'DRAFT' AND pp.status = 'OPEN'
	`)
	if err != nil {
		return fmt.Errorf("failed to list draft timesheets: %w", err)
	}
	defer rows.Close()

	type target struct {
		id        string
		companyID string
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.companyID); err != nil {
			continue
		}
		targets = append(targets, t)
	}

	refreshed := 0
	for _, t := range targets {
		if err := j.refreshSheet(ctx, t.id, t.companyID); err != nil {
			slog.Error("Failed to refresh timesheet", "timesheet_id", t.id, "error", err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		slog.Info("Refreshed draft timesheets", "count", refreshed)
	}
	return nil
}

func (j *TimesheetJobs) refreshSheet(ctx context.Context, id, companyID string) error {
	ts, err := j.timesheetRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if ts.Status != timesheet.StatusDraft {
		return nil
	}

	period, err := j.periodRepo.GetByID(ctx, ts.PayPeriodID, companyID)
	if err != nil {
		return err
	}

	setting, err := j.settingRepo.GetByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, company.ErrSettingNotFound) {
			return err
		}
		setting = company.DefaultSetting(companyID)
	}

	events, err := j.eventRepo.ListByEmployeeBetween(ctx, ts.EmployeeID, period.StartDate, period.EndDate.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	days := timesheetService.BuildDays(events, setting)

	// Carry adjustments across the rebuild, keyed by work date. A date whose
	// events vanished keeps a zero-minute row so its adjustments survive.
	oldAdjustments := map[string][]timesheet.Adjustment{}
	for _, day := range ts.Days {
		if len(day.Adjustments) > 0 {
			key := day.WorkDate.Format(timeutil.DateLayout)
			oldAdjustments[key] = append(oldAdjustments[key], day.Adjustments...)
		}
	}
	present := map[string]bool{}
	for _, day := range days {
		present[day.WorkDate.Format(timeutil.DateLayout)] = true
	}
	for key := range oldAdjustments {
		if !present[key] {
			workDate, err := timeutil.ParseDate(key)
			if err != nil {
				return err
			}
			days = append(days, timesheet.Day{WorkDate: workDate})
		}
	}

	return postgresql.WithTransaction(ctx, j.db, func(txCtx context.Context) error {
		saved, err := j.timesheetRepo.ReplaceDays(txCtx, ts.ID, days)
		if err != nil {
			return err
		}

		for i := range saved {
			adjustments := oldAdjustments[saved[i].WorkDate.Format(timeutil.DateLayout)]
			for _, adj := range adjustments {
				adj.TimesheetDayID = saved[i].ID
				recreated, err := j.timesheetRepo.CreateAdjustment(txCtx, adj)
				if err != nil {
					return err
				}
				saved[i] = timesheetService.ApplyAdjustment(saved[i], recreated)
			}
			if len(adjustments) > 0 {
				if err := j.timesheetRepo.UpdateDayMinutes(txCtx, saved[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
