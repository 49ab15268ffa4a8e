package payslip

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type fakePayslipRepo struct {
	slips map[string]*payslip.Payslip
}

func (f *fakePayslipRepo) Create(_ context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	for _, existing := range f.slips {
		if existing.EmployeeID == slip.EmployeeID && existing.PayPeriodID == slip.PayPeriodID {
			return payslip.Payslip{}, payslip.ErrPayslipExists
		}
	}
	slip.ID = uuid.NewString()
	copied := slip
	f.slips[slip.ID] = &copied
	return slip, nil
}

func (f *fakePayslipRepo) GetByID(_ context.Context, id, _ string) (payslip.Payslip, error) {
	slip, ok := f.slips[id]
	if !ok {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	return *slip, nil
}

func (f *fakePayslipRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID, payPeriodID string) (*payslip.Payslip, error) {
	for _, slip := range f.slips {
		if slip.EmployeeID == employeeID && slip.PayPeriodID == payPeriodID {
			copied := *slip
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePayslipRepo) ListByCompany(_ context.Context, _ string) ([]payslip.Payslip, error) {
	out := make([]payslip.Payslip, 0, len(f.slips))
	for _, slip := range f.slips {
		out = append(out, *slip)
	}
	return out, nil
}

func (f *fakePayslipRepo) UpdateStatus(_ context.Context, slip payslip.Payslip) error {
	stored, ok := f.slips[slip.ID]
	if !ok {
		return payslip.ErrPayslipNotFound
	}
	*stored = slip
	return nil
}

type fakeTimesheetRepo struct {
	sheet *timesheet.Timesheet
}

func (f *fakeTimesheetRepo) Create(_ context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	return ts, nil
}

func (f *fakeTimesheetRepo) GetByID(_ context.Context, _, _ string) (timesheet.Timesheet, error) {
	if f.sheet == nil {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return *f.sheet, nil
}

func (f *fakeTimesheetRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID, payPeriodID string) (*timesheet.Timesheet, error) {
	if f.sheet == nil || f.sheet.EmployeeID != employeeID || f.sheet.PayPeriodID != payPeriodID {
		return nil, nil
	}
	copied := *f.sheet
	return &copied, nil
}

func (f *fakeTimesheetRepo) ListByCompany(_ context.Context, _ string) ([]timesheet.Timesheet, error) {
	return nil, nil
}

func (f *fakeTimesheetRepo) UpdateStatus(_ context.Context, _ timesheet.Timesheet) error { return nil }

func (f *fakeTimesheetRepo) ReplaceDays(_ context.Context, _ string, days []timesheet.Day) ([]timesheet.Day, error) {
	return days, nil
}

func (f *fakeTimesheetRepo) GetDayByDate(_ context.Context, _ string, _ time.Time) (timesheet.Day, error) {
	return timesheet.Day{}, timesheet.ErrDayNotFound
}

func (f *fakeTimesheetRepo) CreateAdjustment(_ context.Context, adj timesheet.Adjustment) (timesheet.Adjustment, error) {
	return adj, nil
}

func (f *fakeTimesheetRepo) ListAdjustmentsByTimesheet(_ context.Context, _ string) ([]timesheet.Adjustment, error) {
	return nil, nil
}

func (f *fakeTimesheetRepo) UpdateDayMinutes(_ context.Context, _ timesheet.Day) error { return nil }

type fakeCompRepo struct {
	latest *compensation.Record
}

func (f *fakeCompRepo) Create(_ context.Context, rec compensation.Record) (compensation.Record, error) {
	return rec, nil
}

func (f *fakeCompRepo) GetOpenEnded(_ context.Context, _ string) (*compensation.Record, error) {
	return nil, nil
}

func (f *fakeCompRepo) CloseRecord(_ context.Context, _ string, _ time.Time) error { return nil }

func (f *fakeCompRepo) GetLatest(_ context.Context, _ string) (compensation.Record, error) {
	if f.latest == nil {
		return compensation.Record{}, compensation.ErrCompensationNotFound
	}
	return *f.latest, nil
}

func (f *fakeCompRepo) ListHistory(_ context.Context, _ string) ([]compensation.Record, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	if f.emp.ID != id || f.emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetByNumber(_ context.Context, _ int) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) SetPINHash(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, _, _ string) error { return nil }

func (f *fakeEmployeeRepo) LockForUpdate(_ context.Context, _ string) error { return nil }

type fakePeriodRepo struct {
	period payperiod.PayPeriod
}

func (f *fakePeriodRepo) Create(_ context.Context, p payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	return p, nil
}

func (f *fakePeriodRepo) GetByID(_ context.Context, id, companyID string) (payperiod.PayPeriod, error) {
	if f.period.ID != id || f.period.CompanyID != companyID {
		return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
	}
	return f.period, nil
}

func (f *fakePeriodRepo) List(_ context.Context, _ string) ([]payperiod.PayPeriod, error) {
	return nil, nil
}

type fakeSettingRepo struct {
	setting company.Setting
}

func (f *fakeSettingRepo) GetByCompany(_ context.Context, _ string) (company.Setting, error) {
	return f.setting, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, setting company.Setting) (company.Setting, error) {
	f.setting = setting
	return setting, nil
}

type fixture struct {
	svc    payslip.PayslipService
	slips  *fakePayslipRepo
	sheets *fakeTimesheetRepo
	comps  *fakeCompRepo
	ctx    context.Context
	emp    employee.Employee
	period payperiod.PayPeriod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	orig := runInTransaction
	runInTransaction = func(ctx context.Context, _ *database.DB, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	t.Cleanup(func() { runInTransaction = orig })

	companyID := uuid.NewString()
	emp := employee.Employee{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		EmployeeNumber: 2025001,
		IsActive:       true,
		EmploymentType: employee.EmploymentTypeDaily,
	}
	period := payperiod.PayPeriod{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:    payperiod.StatusOpen,
	}

	rate := dec("200")
	f := &fixture{
		slips:  &fakePayslipRepo{slips: map[string]*payslip.Payslip{}},
		sheets: &fakeTimesheetRepo{},
		comps: &fakeCompRepo{latest: &compensation.Record{
			ID:            uuid.NewString(),
			EmployeeID:    emp.ID,
			Type:          compensation.TypeDaily,
			DailyRate:     &rate,
			EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		emp:    emp,
		period: period,
	}

	setting := company.DefaultSetting(companyID)
	f.svc = NewPayslipService(nil, f.slips, f.sheets, f.comps,
		&fakeEmployeeRepo{emp: emp}, &fakePeriodRepo{period: period}, &fakeSettingRepo{setting: setting})

	tok, err := jwt.NewBuilder().
		Claim("user_id", uuid.NewString()).
		Claim("company_id", companyID).
		Claim("role", "admin").
		Build()
	require.NoError(t, err)
	f.ctx = jwtauth.NewContext(context.Background(), tok, nil)

	return f
}

func (f *fixture) approvedTimesheet(regularMinutes, overtimeMinutes, days int) {
	sheet := timesheet.Timesheet{
		ID:          uuid.NewString(),
		EmployeeID:  f.emp.ID,
		PayPeriodID: f.period.ID,
		Status:      timesheet.StatusApproved,
	}
	per := regularMinutes / days
	for i := 0; i < days; i++ {
		day := timesheet.Day{
			WorkDate:       f.period.StartDate.AddDate(0, 0, i+1),
			RegularMinutes: per,
		}
		if i == 0 {
			day.OvertimeMinutes = overtimeMinutes
		}
		sheet.Days = append(sheet.Days, day)
	}
	f.sheets.sheet = &sheet
}

func generateRequest(f *fixture) payslip.GeneratePayslipRequest {
	return payslip.GeneratePayslipRequest{EmployeeID: f.emp.ID, PayPeriodID: f.period.ID}
}

func TestGenerateDailyOneDay(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)

	resp, err := f.svc.Generate(f.ctx, generateRequest(f))
	require.NoError(t, err)
	assert.Equal(t, string(payslip.StatusDraft), resp.Status)
	assert.True(t, dec("200.00").Equal(resp.GrossPay), "got %s", resp.GrossPay)
	assert.True(t, resp.NetPay.Equal(resp.GrossPay))
	assert.Equal(t, 480, resp.TotalRegularMinutes)
	assert.Equal(t, "PHP", resp.Currency)
}

func TestGenerateWithDeductions(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(4800, 0, 10)

	req := generateRequest(f)
	req.Deductions = []payslip.DeductionInput{
		{Code: "TAX", Label: "Withholding tax", Amount: dec("150")},
		{Code: "SSS", Label: "Social security", Amount: dec("50.50")},
	}

	resp, err := f.svc.Generate(f.ctx, req)
	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(resp.GrossPay), "got %s", resp.GrossPay)
	assert.True(t, dec("200.50").Equal(resp.TotalDeductions))
	assert.True(t, dec("1799.50").Equal(resp.NetPay))
	assert.Len(t, resp.Items, 3)
}

func TestGenerateRequiresApprovedTimesheet(t *testing.T) {
	f := newFixture(t)

	// No timesheet at all.
	_, err := f.svc.Generate(f.ctx, generateRequest(f))
	assert.ErrorIs(t, err, payslip.ErrTimesheetNotApproved)

	// Draft timesheet.
	f.approvedTimesheet(480, 0, 1)
	f.sheets.sheet.Status = timesheet.StatusDraft
	_, err = f.svc.Generate(f.ctx, generateRequest(f))
	assert.ErrorIs(t, err, payslip.ErrTimesheetNotApproved)

	// Locked is fine.
	f.sheets.sheet.Status = timesheet.StatusLocked
	_, err = f.svc.Generate(f.ctx, generateRequest(f))
	assert.NoError(t, err)
}

func TestGenerateRequiresCompensation(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)
	f.comps.latest = nil

	_, err := f.svc.Generate(f.ctx, generateRequest(f))
	assert.ErrorIs(t, err, payslip.ErrNoCompensationOnFile)
}

func TestGenerateDuplicate(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)

	_, err := f.svc.Generate(f.ctx, generateRequest(f))
	require.NoError(t, err)

	_, err = f.svc.Generate(f.ctx, generateRequest(f))
	assert.ErrorIs(t, err, payslip.ErrPayslipExists)
}

func TestFinalizeWritesSnapshot(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)

	created, err := f.svc.Generate(f.ctx, generateRequest(f))
	require.NoError(t, err)

	finalized, err := f.svc.Finalize(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payslip.StatusFinalized), finalized.Status)
	assert.NotNil(t, finalized.FinalizedAt)

	stored := f.slips.slips[created.ID]
	require.NotNil(t, stored.SnapshotJSON)

	var snapshot payslip.Snapshot
	require.NoError(t, json.Unmarshal([]byte(*stored.SnapshotJSON), &snapshot))
	assert.Equal(t, f.emp.ID, snapshot.EmployeeID)
	assert.Equal(t, "DAILY", snapshot.CompensationType)
	assert.Equal(t, "2026-01-01", snapshot.PeriodStart)
	assert.Equal(t, 1, snapshot.DaysWorked)
	assert.True(t, dec("200").Equal(snapshot.Rate))
}

func TestFinalizeTwiceRejected(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)

	created, err := f.svc.Generate(f.ctx, generateRequest(f))
	require.NoError(t, err)
	_, err = f.svc.Finalize(f.ctx, created.ID)
	require.NoError(t, err)

	_, err = f.svc.Finalize(f.ctx, created.ID)
	assert.ErrorIs(t, err, payslip.ErrInvalidStatusTransition)
}

func TestVoidOnlyFromFinalized(t *testing.T) {
	f := newFixture(t)
	f.approvedTimesheet(480, 0, 1)

	created, err := f.svc.Generate(f.ctx, generateRequest(f))
	require.NoError(t, err)

	// Drafts cannot be voided.
	_, err = f.svc.Void(f.ctx, created.ID)
	assert.ErrorIs(t, err, payslip.ErrInvalidStatusTransition)

	_, err = f.svc.Finalize(f.ctx, created.ID)
	require.NoError(t, err)

	voided, err := f.svc.Void(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payslip.StatusVoid), voided.Status)
	assert.NotNil(t, voided.VoidedAt)

	// And a voided payslip is terminal.
	_, err = f.svc.Finalize(f.ctx, created.ID)
	assert.ErrorIs(t, err, payslip.ErrInvalidStatusTransition)
}
