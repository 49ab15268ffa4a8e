package timesheet

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	PayPeriodID string `json:"pay_period_id"`
}

func (r GenerateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddAdjustmentRequest struct {
	Field           string `json:"field"`
	Mode            string `json:"mode"`
	DeltaMinutes    *int   `json:"delta_minutes,omitempty"`
	OverrideMinutes *int   `json:"override_minutes,omitempty"`
	Reason          string `json:"reason"`
}

func (r AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !AdjustmentField(r.Field).Valid() {
		errs = append(errs, validator.ValidationError{Field: "field", Message: "must be REGULAR, BREAK or OVERTIME"})
	}
	mode := AdjustmentMode(r.Mode)
	if !mode.Valid() {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be DELTA or OVERRIDE"})
	}
	switch mode {
	case ModeDelta:
		if r.DeltaMinutes == nil {
			errs = append(errs, validator.ValidationError{Field: "delta_minutes", Message: "is required for DELTA"})
		}
	case ModeOverride:
		if r.OverrideMinutes == nil {
			errs = append(errs, validator.ValidationError{Field: "override_minutes", Message: "is required for OVERRIDE"})
		} else if *r.OverrideMinutes < 0 {
			errs = append(errs, validator.ValidationError{Field: "override_minutes", Message: "must not be negative"})
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AnomalyResponse struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type AdjustmentResponse struct {
	ID              string    `json:"id"`
	Field           string    `json:"field"`
	Mode            string    `json:"mode"`
	DeltaMinutes    *int      `json:"delta_minutes,omitempty"`
	OverrideMinutes *int      `json:"override_minutes,omitempty"`
	Reason          string    `json:"reason"`
	CreatedByUserID string    `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type DayResponse struct {
	WorkDate        string               `json:"work_date"`
	RegularMinutes  int                  `json:"regular_minutes"`
	BreakMinutes    int                  `json:"break_minutes"`
	OvertimeMinutes int                  `json:"overtime_minutes"`
	Anomalies       []AnomalyResponse    `json:"anomalies,omitempty"`
	Adjustments     []AdjustmentResponse `json:"adjustments,omitempty"`
}

type TimesheetResponse struct {
	ID                   string        `json:"id"`
	EmployeeID           string        `json:"employee_id"`
	PayPeriodID          string        `json:"pay_period_id"`
	Status               string        `json:"status"`
	TotalRegularMinutes  int           `json:"total_regular_minutes"`
	TotalBreakMinutes    int           `json:"total_break_minutes"`
	TotalOvertimeMinutes int           `json:"total_overtime_minutes"`
	GeneratedAt          *time.Time    `json:"generated_at,omitempty"`
	Days                 []DayResponse `json:"days,omitempty"`
}

func ToResponse(ts Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:                   ts.ID,
		EmployeeID:           ts.EmployeeID,
		PayPeriodID:          ts.PayPeriodID,
		Status:               string(ts.Status),
		TotalRegularMinutes:  ts.TotalRegularMinutes(),
		TotalBreakMinutes:    ts.TotalBreakMinutes(),
		TotalOvertimeMinutes: ts.TotalOvertimeMinutes(),
		GeneratedAt:          ts.GeneratedAt,
	}
	for _, day := range ts.Days {
		dayResp := DayResponse{
			WorkDate:        day.WorkDate.Format("2006-01-02"),
			RegularMinutes:  day.RegularMinutes,
			BreakMinutes:    day.BreakMinutes,
			OvertimeMinutes: day.OvertimeMinutes,
		}
		for _, a := range day.Anomalies {
			dayResp.Anomalies = append(dayResp.Anomalies, AnomalyResponse{
				Code:     a.Code,
				Severity: string(a.Severity),
				Message:  a.Message,
			})
		}
		for _, adj := range day.Adjustments {
			dayResp.Adjustments = append(dayResp.Adjustments, AdjustmentResponse{
				ID:              adj.ID,
				Field:           string(adj.Field),
				Mode:            string(adj.Mode),
				DeltaMinutes:    adj.DeltaMinutes,
				OverrideMinutes: adj.OverrideMinutes,
				Reason:          adj.Reason,
				CreatedByUserID: adj.CreatedByUserID,
				CreatedAt:       adj.CreatedAt,
			})
		}
		resp.Days = append(resp.Days, dayResp)
	}
	return resp
}
