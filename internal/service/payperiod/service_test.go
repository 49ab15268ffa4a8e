package payperiod

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type fakePeriodRepo struct {
	periods []payperiod.PayPeriod
}

func (f *fakePeriodRepo) Create(_ context.Context, period payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	for _, p := range f.periods {
		if p.CompanyID != period.CompanyID {
			continue
		}
		if !period.EndDate.Before(p.StartDate) && !period.StartDate.After(p.EndDate) {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodOverlap
		}
	}
	period.ID = uuid.NewString()
	f.periods = append(f.periods, period)
	return period, nil
}

func (f *fakePeriodRepo) GetByID(_ context.Context, id string, companyID string) (payperiod.PayPeriod, error) {
	for _, p := range f.periods {
		if p.ID == id && p.CompanyID == companyID {
			return p, nil
		}
	}
	return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
}

func (f *fakePeriodRepo) List(_ context.Context, companyID string) ([]payperiod.PayPeriod, error) {
	var out []payperiod.PayPeriod
	for _, p := range f.periods {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
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

func newTestService(t *testing.T) (payperiod.PayPeriodService, context.Context) {
	t.Helper()
	return NewPayPeriodService(&fakePeriodRepo{}), adminContext(t, uuid.NewString())
}

func TestCreatePayPeriod(t *testing.T) {
	svc, ctx := newTestService(t)

	resp, err := svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "OPEN", resp.Status)
	assert.Equal(t, "2026-01-01", resp.StartDate)
	assert.Equal(t, "2026-01-15", resp.EndDate)
}

func TestCreateOverlappingPeriod(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-15",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-10",
		EndDate:   "2026-01-31",
	})
	assert.ErrorIs(t, err, payperiod.ErrPayPeriodOverlap)

	// Adjacent, non-overlapping period is fine.
	_, err = svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-16",
		EndDate:   "2026-01-31",
	})
	assert.NoError(t, err)
}

func TestCreateRejectsReversedDates(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-15",
		EndDate:   "2026-01-01",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestListScopedToCompany(t *testing.T) {
	repo := &fakePeriodRepo{}
	svc := NewPayPeriodService(repo)
	ctxA := adminContext(t, uuid.NewString())
	ctxB := adminContext(t, uuid.NewString())

	_, err := svc.Create(ctxA, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-15",
	})
	require.NoError(t, err)

	periodsA, err := svc.List(ctxA)
	require.NoError(t, err)
	assert.Len(t, periodsA, 1)

	periodsB, err := svc.List(ctxB)
	require.NoError(t, err)
	assert.Empty(t, periodsB)
}

func TestGetUnknownPeriod(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, payperiod.ErrPayPeriodNotFound)
}

func TestPeriodDatesAreUTCDateOnly(t *testing.T) {
	svc, ctx := newTestService(t)

	resp, err := svc.Create(ctx, payperiod.CreatePayPeriodRequest{
		StartDate: "2026-02-01",
		EndDate:   "2026-02-15",
	})
	require.NoError(t, err)

	start, err := time.Parse("2006-01-02", resp.StartDate)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, start.Location())
}
