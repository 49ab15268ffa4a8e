package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
)

var runInTransaction = postgresql.WithTransaction

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.TimesheetRepository
	timeevent.TimeEventRepository
	employee.EmployeeRepository
	payperiod.PayPeriodRepository
	company.SettingRepository
}

func NewTimesheetService(
	db *database.DB,
	timesheetRepo timesheet.TimesheetRepository,
	eventRepo timeevent.TimeEventRepository,
	employeeRepo employee.EmployeeRepository,
	periodRepo payperiod.PayPeriodRepository,
	settingRepo company.SettingRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                  db,
		TimesheetRepository: timesheetRepo,
		TimeEventRepository: eventRepo,
		EmployeeRepository:  employeeRepo,
		PayPeriodRepository: periodRepo,
		SettingRepository:   settingRepo,
	}
}

// GenerateForPeriod implements timesheet.TimesheetService. Re-running it is
// safe: employees that already have a sheet for the period are skipped, and
// only the newly created sheets are returned.
func (s *TimesheetServiceImpl) GenerateForPeriod(ctx context.Context, req timesheet.GenerateRequest) ([]timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	period, err := s.PayPeriodRepository.GetByID(ctx, req.PayPeriodID, act.CompanyID)
	if err != nil {
		return nil, err
	}
	if period.Status == payperiod.StatusClosed {
		return nil, payperiod.ErrPayPeriodClosed
	}

	setting, err := s.companySetting(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	created := []timesheet.TimesheetResponse{}
	for _, emp := range employees {
		now := time.Now().UTC()
		ts, err := s.TimesheetRepository.Create(ctx, timesheet.Timesheet{
			EmployeeID:  emp.ID,
			PayPeriodID: period.ID,
			Status:      timesheet.StatusDraft,
			GeneratedAt: &now,
		})
		if err != nil {
			if errors.Is(err, timesheet.ErrTimesheetExists) {
				continue
			}
			return nil, err
		}

		days, err := s.aggregateDays(ctx, emp.ID, period, setting)
		if err != nil {
			return nil, err
		}
		if ts.Days, err = s.TimesheetRepository.ReplaceDays(ctx, ts.ID, days); err != nil {
			return nil, err
		}

		created = append(created, timesheet.ToResponse(ts))
	}

	return created, nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.getForActor(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(ts), nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context) ([]timesheet.TimesheetResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	sheets, err := s.TimesheetRepository.ListByCompany(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		responses = append(responses, timesheet.ToResponse(ts))
	}
	return responses, nil
}

// RebuildDays implements timesheet.TimesheetService. It recomputes the day
// rows from the event log and re-applies the sheet's recorded adjustments,
// so a rebuild after late clock events never silently discards manual
// corrections.
func (s *TimesheetServiceImpl) RebuildDays(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !ts.Status.Editable() {
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotEditable
	}

	period, err := s.PayPeriodRepository.GetByID(ctx, ts.PayPeriodID, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	setting, err := s.companySetting(ctx, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	days, err := s.aggregateDays(ctx, ts.EmployeeID, period, setting)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	// Adjustments recorded against the old day rows, keyed by work date so
	// they can be replayed onto the rebuilt ones.
	oldAdjustments := map[string][]timesheet.Adjustment{}
	for _, day := range ts.Days {
		if len(day.Adjustments) > 0 {
			key := day.WorkDate.Format(timeutil.DateLayout)
			oldAdjustments[key] = append(oldAdjustments[key], day.Adjustments...)
		}
	}

	// A date that had adjustments keeps a day row even if its events
	// vanished, so the audit trail survives.
	present := map[string]bool{}
	for _, day := range days {
		present[day.WorkDate.Format(timeutil.DateLayout)] = true
	}
	for key := range oldAdjustments {
		if !present[key] {
			workDate, err := timeutil.ParseDate(key)
			if err != nil {
				return timesheet.TimesheetResponse{}, err
			}
			days = append(days, timesheet.Day{WorkDate: workDate})
		}
	}

	err = runInTransaction(ctx, s.db, func(txCtx context.Context) error {
		saved, err := s.TimesheetRepository.ReplaceDays(txCtx, ts.ID, days)
		if err != nil {
			return err
		}

		for i := range saved {
			adjustments := oldAdjustments[saved[i].WorkDate.Format(timeutil.DateLayout)]
			for _, adj := range adjustments {
				adj.TimesheetDayID = saved[i].ID
				recreated, err := s.TimesheetRepository.CreateAdjustment(txCtx, adj)
				if err != nil {
					return err
				}
				saved[i] = applyAndRecord(saved[i], recreated)
			}
			if len(adjustments) > 0 {
				if err := s.TimesheetRepository.UpdateDayMinutes(txCtx, saved[i]); err != nil {
					return err
				}
			}
		}

		ts.Days = saved
		return nil
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return timesheet.ToResponse(ts), nil
}

// Review implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Review(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	return s.advance(ctx, id, timesheet.StatusReviewed)
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	return s.advance(ctx, id, timesheet.StatusApproved)
}

// Lock implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Lock(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	return s.advance(ctx, id, timesheet.StatusLocked)
}

func (s *TimesheetServiceImpl) advance(ctx context.Context, id string, to timesheet.Status) (timesheet.TimesheetResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if err := timesheet.ValidateStatusTransition(ts.Status, to); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	now := time.Now().UTC()
	ts.Status = to
	switch to {
	case timesheet.StatusReviewed:
		ts.ReviewedAt = &now
		ts.ReviewedByUserID = &act.UserID
	case timesheet.StatusApproved:
		ts.ApprovedAt = &now
		ts.ApprovedByUserID = &act.UserID
	case timesheet.StatusLocked:
		ts.LockedAt = &now
		ts.LockedByUserID = &act.UserID
	}

	if err := s.TimesheetRepository.UpdateStatus(ctx, ts); err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(ts), nil
}

// AddAdjustment implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) AddAdjustment(ctx context.Context, id string, workDate string, req timesheet.AddAdjustmentRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	if !ts.Status.Editable() {
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotEditable
	}

	date, err := timeutil.ParseDate(workDate)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	day, err := s.TimesheetRepository.GetDayByDate(ctx, ts.ID, date)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	adj := timesheet.Adjustment{
		TimesheetDayID:  day.ID,
		Field:           timesheet.AdjustmentField(req.Field),
		Mode:            timesheet.AdjustmentMode(req.Mode),
		DeltaMinutes:    req.DeltaMinutes,
		OverrideMinutes: req.OverrideMinutes,
		Reason:          req.Reason,
		CreatedByUserID: act.UserID,
	}

	err = runInTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.TimesheetRepository.CreateAdjustment(txCtx, adj)
		if err != nil {
			return err
		}
		day = applyAndRecord(day, created)
		return s.TimesheetRepository.UpdateDayMinutes(txCtx, day)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err = s.TimesheetRepository.GetByID(ctx, ts.ID, act.CompanyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(ts), nil
}

func (s *TimesheetServiceImpl) getForActor(ctx context.Context, id string) (timesheet.Timesheet, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	return s.TimesheetRepository.GetByID(ctx, id, act.CompanyID)
}

func (s *TimesheetServiceImpl) companySetting(ctx context.Context, companyID string) (company.Setting, error) {
	setting, err := s.SettingRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingNotFound) {
			return company.DefaultSetting(companyID), nil
		}
		return company.Setting{}, err
	}
	return setting, nil
}

// aggregateDays buckets the employee's events inside the period. The period
// end date is inclusive.
func (s *TimesheetServiceImpl) aggregateDays(ctx context.Context, employeeID string, period payperiod.PayPeriod, setting company.Setting) ([]timesheet.Day, error) {
	events, err := s.TimeEventRepository.ListByEmployeeBetween(ctx, employeeID, period.StartDate, period.EndDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return BuildDays(events, setting), nil
}

func applyAndRecord(day timesheet.Day, adj timesheet.Adjustment) timesheet.Day {
	day = ApplyAdjustment(day, adj)
	day.Adjustments = append(day.Adjustments, adj)
	return day
}
