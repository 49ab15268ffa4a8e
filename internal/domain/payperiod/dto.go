package payperiod

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type CreatePayPeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r CreatePayPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) == 0 {
		start, _ := validator.ParseDate(r.StartDate)
		end, _ := validator.ParseDate(r.EndDate)
		if !end.After(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayPeriodResponse struct {
	ID        string    `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(p PayPeriod) PayPeriodResponse {
	return PayPeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}
