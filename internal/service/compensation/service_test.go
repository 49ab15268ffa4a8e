package compensation

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type fakeCompRepo struct {
	records []compensation.Record
}

func (f *fakeCompRepo) Create(_ context.Context, rec compensation.Record) (compensation.Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeCompRepo) GetOpenEnded(_ context.Context, employeeID string) (*compensation.Record, error) {
	for i := range f.records {
		if f.records[i].EmployeeID == employeeID && f.records[i].EffectiveTo == nil {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeCompRepo) CloseRecord(_ context.Context, id string, effectiveTo time.Time) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].EffectiveTo = &effectiveTo
			return nil
		}
	}
	return compensation.ErrCompensationNotFound
}

func (f *fakeCompRepo) GetLatest(_ context.Context, employeeID string) (compensation.Record, error) {
	var latest *compensation.Record
	for i := range f.records {
		rec := f.records[i]
		if rec.EmployeeID != employeeID {
			continue
		}
		if latest == nil || rec.EffectiveFrom.After(latest.EffectiveFrom) {
			latest = &rec
		}
	}
	if latest == nil {
		return compensation.Record{}, compensation.ErrCompensationNotFound
	}
	return *latest, nil
}

func (f *fakeCompRepo) ListHistory(_ context.Context, employeeID string) ([]compensation.Record, error) {
	var out []compensation.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveFrom.After(out[j].EffectiveFrom) })
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
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

func adminContext(t *testing.T, companyID string) context.Context {
	t.Helper()

	tok, err := jwt.NewBuilder().
		Claim("user_id", uuid.NewString()).
		Claim("company_id", companyID).
		Claim("role", "admin").
		Build()
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(t *testing.T) (compensation.CompensationService, *fakeCompRepo, context.Context, string) {
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
		EmployeeNumber: 1001,
		IsActive:       true,
	}
	comps := &fakeCompRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}}

	svc := NewCompensationService(nil, comps, employees)
	return svc, comps, adminContext(t, companyID), emp.ID
}

func hourlyRequest(rate, effectiveFrom string) compensation.CreateCompensationRequest {
	d := decimal.RequireFromString(rate)
	return compensation.CreateCompensationRequest{
		Type:          "HOURLY",
		HourlyRate:    &d,
		EffectiveFrom: effectiveFrom,
	}
}

func TestAddFirstRecord(t *testing.T) {
	svc, comps, ctx, employeeID := newTestService(t)

	resp, err := svc.Add(ctx, employeeID, hourlyRequest("25", "2026-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "HOURLY", resp.Type)
	assert.Equal(t, "2026-01-01", resp.EffectiveFrom)
	assert.Nil(t, resp.EffectiveTo)
	assert.Len(t, comps.records, 1)
}

func TestAddClosesOpenRecord(t *testing.T) {
	svc, comps, ctx, employeeID := newTestService(t)

	_, err := svc.Add(ctx, employeeID, hourlyRequest("25", "2026-01-01"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, employeeID, hourlyRequest("27.50", "2026-04-01"))
	require.NoError(t, err)

	require.Len(t, comps.records, 2)

	// Exactly one open-ended record; the superseded one closes the day
	// before the new one takes effect.
	open := 0
	for _, rec := range comps.records {
		if rec.EffectiveTo == nil {
			open++
		} else {
			assert.Equal(t, "2026-03-31", rec.EffectiveTo.Format("2006-01-02"))
		}
	}
	assert.Equal(t, 1, open)
}

func TestAddRejectsNonForwardEffectiveFrom(t *testing.T) {
	svc, _, ctx, employeeID := newTestService(t)

	_, err := svc.Add(ctx, employeeID, hourlyRequest("25", "2026-04-01"))
	require.NoError(t, err)

	_, err = svc.Add(ctx, employeeID, hourlyRequest("30", "2026-04-01"))
	assert.ErrorIs(t, err, compensation.ErrEffectiveFromNotAfterCurrent)

	_, err = svc.Add(ctx, employeeID, hourlyRequest("30", "2026-01-15"))
	assert.ErrorIs(t, err, compensation.ErrEffectiveFromNotAfterCurrent)
}

func TestAddValidation(t *testing.T) {
	svc, _, ctx, employeeID := newTestService(t)

	daily := decimal.RequireFromString("150")
	req := compensation.CreateCompensationRequest{
		Type:          "HOURLY",
		DailyRate:     &daily,
		EffectiveFrom: "2026-01-01",
	}
	_, err := svc.Add(ctx, employeeID, req)
	assert.Error(t, err)
}

func TestAddUnknownEmployee(t *testing.T) {
	svc, _, ctx, _ := newTestService(t)

	_, err := svc.Add(ctx, uuid.NewString(), hourlyRequest("25", "2026-01-01"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetCurrentReturnsLatestEffectiveFrom(t *testing.T) {
	svc, _, ctx, employeeID := newTestService(t)

	_, err := svc.Add(ctx, employeeID, hourlyRequest("25", "2026-01-01"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, employeeID, hourlyRequest("27.50", "2026-04-01"))
	require.NoError(t, err)

	cur, err := svc.GetCurrent(ctx, employeeID, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, cur.HourlyRate)
	assert.True(t, decimal.RequireFromString("27.50").Equal(*cur.HourlyRate))
}

func TestGetCurrentEmptyHistory(t *testing.T) {
	svc, _, ctx, employeeID := newTestService(t)

	_, err := svc.GetCurrent(ctx, employeeID, time.Now().UTC())
	assert.ErrorIs(t, err, compensation.ErrCompensationNotFound)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	svc, _, ctx, employeeID := newTestService(t)

	_, err := svc.Add(ctx, employeeID, hourlyRequest("25", "2026-01-01"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, employeeID, hourlyRequest("27.50", "2026-04-01"))
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-04-01", history[0].EffectiveFrom)
	assert.Equal(t, "2026-01-01", history[1].EffectiveFrom)
}
