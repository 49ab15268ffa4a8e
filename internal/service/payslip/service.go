package payslip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/money"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
)

var runInTransaction = postgresql.WithTransaction

type PayslipServiceImpl struct {
	db *database.DB
	payslip.PayslipRepository
	timesheet.TimesheetRepository
	compensation.CompensationRepository
	employee.EmployeeRepository
	payperiod.PayPeriodRepository
	company.SettingRepository
}

func NewPayslipService(
	db *database.DB,
	payslipRepo payslip.PayslipRepository,
	timesheetRepo timesheet.TimesheetRepository,
	compRepo compensation.CompensationRepository,
	employeeRepo employee.EmployeeRepository,
	periodRepo payperiod.PayPeriodRepository,
	settingRepo company.SettingRepository,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		db:                     db,
		PayslipRepository:      payslipRepo,
		TimesheetRepository:    timesheetRepo,
		CompensationRepository: compRepo,
		EmployeeRepository:     employeeRepo,
		PayPeriodRepository:    periodRepo,
		SettingRepository:      settingRepo,
	}
}

// Generate implements payslip.PayslipService. It requires the employee's
// timesheet for the period to be at least APPROVED, prices its minute totals
// with the current compensation record, and stores a DRAFT payslip with
// itemized earnings and the caller-supplied deductions.
func (s *PayslipServiceImpl) Generate(ctx context.Context, req payslip.GeneratePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, act.CompanyID); err != nil {
		return payslip.PayslipResponse{}, err
	}
	period, err := s.PayPeriodRepository.GetByID(ctx, req.PayPeriodID, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	ts, err := s.TimesheetRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, period.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if ts == nil || !ts.Status.AtLeastApproved() {
		return payslip.PayslipResponse{}, payslip.ErrTimesheetNotApproved
	}

	comp, err := s.CompensationRepository.GetLatest(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, compensation.ErrCompensationNotFound) {
			return payslip.PayslipResponse{}, payslip.ErrNoCompensationOnFile
		}
		return payslip.PayslipResponse{}, err
	}
	setting, err := s.companySetting(ctx, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	result := Compute(CalcInput{
		CompensationType:   comp.Type,
		Rate:               comp.Rate(),
		RegularMinutes:     ts.TotalRegularMinutes(),
		OvertimeMinutes:    ts.TotalOvertimeMinutes(),
		DaysWorked:         ts.DaysWorked(),
		OvertimeMultiplier: setting.OvertimeMultiplier,
		PayPeriodsPerMonth: setting.PayPeriodsPerMonth,
	})

	items := result.Earnings
	for _, d := range req.Deductions {
		items = append(items, payslip.Item{
			Type:   payslip.ItemDeduction,
			Code:   d.Code,
			Label:  d.Label,
			Amount: money.RoundCurrency(d.Amount),
		})
	}
	totalDeductions := SumDeductions(items)

	now := time.Now().UTC()
	slip := payslip.Payslip{
		EmployeeID:           req.EmployeeID,
		PayPeriodID:          period.ID,
		Status:               payslip.StatusDraft,
		Currency:             setting.Currency,
		TotalRegularMinutes:  ts.TotalRegularMinutes(),
		TotalOvertimeMinutes: ts.TotalOvertimeMinutes(),
		GrossPay:             result.GrossPay,
		TotalDeductions:      totalDeductions,
		NetPay:               result.GrossPay.Sub(totalDeductions),
		GeneratedByUserID:    &act.UserID,
		GeneratedAt:          &now,
		Items:                items,
	}

	var created payslip.Payslip
	err = runInTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.PayslipRepository.Create(txCtx, slip)
		return err
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.ToResponse(created), nil
}

// Get implements payslip.PayslipService.
func (s *PayslipServiceImpl) Get(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slip, err := s.PayslipRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToResponse(slip), nil
}

// List implements payslip.PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context) ([]payslip.PayslipResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	slips, err := s.PayslipRepository.ListByCompany(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, payslip.ToResponse(slip))
	}
	return responses, nil
}

// Finalize implements payslip.PayslipService. Finalization freezes the
// numbers and writes the audit snapshot of the inputs they came from.
func (s *PayslipServiceImpl) Finalize(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slip, err := s.PayslipRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if err := payslip.ValidateStatusTransition(slip.Status, payslip.StatusFinalized); err != nil {
		return payslip.PayslipResponse{}, err
	}

	snapshot, err := s.buildSnapshot(ctx, slip, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to encode payslip snapshot: %w", err)
	}
	snapshotJSON := string(raw)

	now := time.Now().UTC()
	slip.Status = payslip.StatusFinalized
	slip.FinalizedAt = &now
	slip.SnapshotJSON = &snapshotJSON

	if err := s.PayslipRepository.UpdateStatus(ctx, slip); err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToResponse(slip), nil
}

// Void implements payslip.PayslipService. Only a finalized payslip can be
// voided; drafts are regenerated instead.
func (s *PayslipServiceImpl) Void(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slip, err := s.PayslipRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if err := payslip.ValidateStatusTransition(slip.Status, payslip.StatusVoid); err != nil {
		return payslip.PayslipResponse{}, err
	}

	now := time.Now().UTC()
	slip.Status = payslip.StatusVoid
	slip.VoidedAt = &now
	slip.VoidedByUserID = &act.UserID

	if err := s.PayslipRepository.UpdateStatus(ctx, slip); err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToResponse(slip), nil
}

func (s *PayslipServiceImpl) buildSnapshot(ctx context.Context, slip payslip.Payslip, companyID string) (payslip.Snapshot, error) {
	period, err := s.PayPeriodRepository.GetByID(ctx, slip.PayPeriodID, companyID)
	if err != nil {
		return payslip.Snapshot{}, err
	}
	comp, err := s.CompensationRepository.GetLatest(ctx, slip.EmployeeID)
	if err != nil {
		return payslip.Snapshot{}, err
	}
	setting, err := s.companySetting(ctx, companyID)
	if err != nil {
		return payslip.Snapshot{}, err
	}

	daysWorked := 0
	if ts, err := s.TimesheetRepository.GetByEmployeeAndPeriod(ctx, slip.EmployeeID, slip.PayPeriodID); err != nil {
		return payslip.Snapshot{}, err
	} else if ts != nil {
		daysWorked = ts.DaysWorked()
	}

	return payslip.Snapshot{
		EmployeeID:           slip.EmployeeID,
		PayPeriodID:          slip.PayPeriodID,
		PeriodStart:          period.StartDate.Format(timeutil.DateLayout),
		PeriodEnd:            period.EndDate.Format(timeutil.DateLayout),
		CompensationType:     string(comp.Type),
		Rate:                 comp.Rate(),
		TotalRegularMinutes:  slip.TotalRegularMinutes,
		TotalOvertimeMinutes: slip.TotalOvertimeMinutes,
		DaysWorked:           daysWorked,
		OvertimeMultiplier:   setting.OvertimeMultiplier,
		PayPeriodsPerMonth:   setting.PayPeriodsPerMonth,
	}, nil
}

func (s *PayslipServiceImpl) companySetting(ctx context.Context, companyID string) (company.Setting, error) {
	setting, err := s.SettingRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingNotFound) {
			return company.DefaultSetting(companyID), nil
		}
		return company.Setting{}, err
	}
	return setting, nil
}
