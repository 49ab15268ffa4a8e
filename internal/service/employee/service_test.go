package employee

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range f.byID {
		if existing.CompanyID == emp.CompanyID && existing.EmployeeNumber == emp.EmployeeNumber {
			return employee.Employee{}, employee.ErrEmployeeNumberTaken
		}
	}
	emp.ID = uuid.NewString()
	f.byID[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByNumber(_ context.Context, employeeNumber int) (employee.Employee, error) {
	for _, emp := range f.byID {
		if emp.EmployeeNumber == employeeNumber {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.byID {
		if emp.CompanyID == companyID && emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.byID {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) SetPINHash(_ context.Context, id string, companyID string, pinHash string) error {
	emp, ok := f.byID[id]
	if !ok || emp.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	emp.PinHash = &pinHash
	f.byID[id] = emp
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, id string, companyID string) error {
	emp, ok := f.byID[id]
	if !ok || emp.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = false
	f.byID[id] = emp
	return nil
}

func (f *fakeEmployeeRepo) LockForUpdate(_ context.Context, _ string) error {
	return nil
}

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

func newTestService(t *testing.T) (employee.EmployeeService, *fakeEmployeeRepo, context.Context, string) {
	t.Helper()

	companyID := uuid.NewString()
	repo := &fakeEmployeeRepo{byID: map[string]employee.Employee{}}
	return NewEmployeeService(repo), repo, adminContext(t, companyID), companyID
}

func createRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeNumber: 1001,
		FirstName:      "Maria",
		LastName:       "Santos",
		EmploymentType: "HOURLY",
	}
}

func TestCreateEmployee(t *testing.T) {
	svc, repo, ctx, companyID := newTestService(t)

	hiredAt := "2026-01-15"
	req := createRequest()
	req.HiredAt = &hiredAt

	resp, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.False(t, resp.HasPIN)
	require.NotNil(t, resp.HiredAt)
	assert.Equal(t, "2026-01-15", resp.HiredAt.Format("2006-01-02"))
	assert.Equal(t, companyID, repo.byID[resp.ID].CompanyID)
}

func TestCreateDuplicateNumber(t *testing.T) {
	svc, _, ctx, _ := newTestService(t)

	_, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest())
	assert.ErrorIs(t, err, employee.ErrEmployeeNumberTaken)
}

func TestCreateValidation(t *testing.T) {
	svc, _, ctx, _ := newTestService(t)

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		EmployeeNumber: 0,
		EmploymentType: "WEEKLY",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestSetPINStoresHashOnly(t *testing.T) {
	svc, repo, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetPIN(ctx, created.ID, employee.SetPINRequest{PIN: "4321"}))

	stored := repo.byID[created.ID]
	require.NotNil(t, stored.PinHash)
	assert.NotContains(t, *stored.PinHash, "4321")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PinHash), []byte("4321")))
}

func TestSetPINRejectsWeakPIN(t *testing.T) {
	svc, _, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	for _, pin := range []string{"12", "123456789", "12ab"} {
		err := svc.SetPIN(ctx, created.ID, employee.SetPINRequest{PIN: pin})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "pin %q", pin)
	}
}

func TestDeactivate(t *testing.T) {
	svc, repo, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	assert.False(t, repo.byID[created.ID].IsActive)
}

func TestGetOtherCompanyEmployee(t *testing.T) {
	svc, _, ctx, _ := newTestService(t)

	created, err := svc.Create(ctx, createRequest())
	require.NoError(t, err)

	_, err = svc.Get(adminContext(t, uuid.NewString()), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
