package compensation

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCompensationRequest struct {
	Type          string           `json:"type"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	EffectiveFrom string           `json:"effective_from"`
}

func (r CreateCompensationRequest) Validate() error {
	var errs validator.ValidationErrors

	compType := Type(r.Type)
	if !compType.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be HOURLY, DAILY or SALARIED"})
	}
	if !validator.IsValidDate(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD"})
	}

	// Exactly one rate field, consistent with the type.
	populated := 0
	for _, rate := range []*decimal.Decimal{r.HourlyRate, r.DailyRate, r.MonthlySalary} {
		if rate != nil {
			populated++
			if rate.LessThanOrEqual(decimal.Zero) {
				errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be positive"})
			}
		}
	}
	if populated != 1 {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "exactly one of hourly_rate, daily_rate, monthly_salary must be set"})
	} else {
		switch {
		case compType == TypeHourly && r.HourlyRate == nil:
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for HOURLY"})
		case compType == TypeDaily && r.DailyRate == nil:
			errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "is required for DAILY"})
		case compType == TypeSalaried && r.MonthlySalary == nil:
			errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "is required for SALARIED"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompensationResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	Type          string           `json:"type"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func ToResponse(rec Record) CompensationResponse {
	resp := CompensationResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		Type:          string(rec.Type),
		HourlyRate:    rec.HourlyRate,
		DailyRate:     rec.DailyRate,
		MonthlySalary: rec.MonthlySalary,
		EffectiveFrom: rec.EffectiveFrom.Format("2006-01-02"),
		CreatedAt:     rec.CreatedAt,
	}
	if rec.EffectiveTo != nil {
		to := rec.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}
