package company

import (
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingRequest struct {
	Timezone           *string          `json:"timezone,omitempty"`
	Currency           *string          `json:"currency,omitempty"`
	RoundingRule       *string          `json:"rounding_rule,omitempty"`
	RoundingDirection  *string          `json:"rounding_direction,omitempty"`
	BreakPolicy        *string          `json:"break_policy,omitempty"`
	OvertimeRule       *string          `json:"overtime_rule,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	PayPeriodsPerMonth *int             `json:"pay_periods_per_month,omitempty"`
	GracePeriodMinutes *int             `json:"grace_period_minutes,omitempty"`
}

func (r UpdateSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RoundingRule != nil && !RoundingRule(*r.RoundingRule).Valid() {
		errs = append(errs, validator.ValidationError{Field: "rounding_rule", Message: "must be NONE, NEAREST_5, NEAREST_10 or NEAREST_15"})
	}
	if r.RoundingDirection != nil {
		switch *r.RoundingDirection {
		case "up", "down", "nearest":
		default:
			errs = append(errs, validator.ValidationError{Field: "rounding_direction", Message: "must be up, down or nearest"})
		}
	}
	if r.BreakPolicy != nil && !BreakPolicy(*r.BreakPolicy).Valid() {
		errs = append(errs, validator.ValidationError{Field: "break_policy", Message: "must be UNPAID or PAID"})
	}
	if r.OvertimeRule != nil && !OvertimeRule(*r.OvertimeRule).Valid() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rule", Message: "must be NONE or DAILY_OVER_8H"})
	}
	if r.OvertimeMultiplier != nil && r.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be at least 1"})
	}
	if r.PayPeriodsPerMonth != nil && (*r.PayPeriodsPerMonth < 1 || *r.PayPeriodsPerMonth > 4) {
		errs = append(errs, validator.ValidationError{Field: "pay_periods_per_month", Message: "must be between 1 and 4"})
	}
	if r.GracePeriodMinutes != nil && *r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_period_minutes", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingResponse struct {
	CompanyID          string          `json:"company_id"`
	Timezone           string          `json:"timezone"`
	Currency           string          `json:"currency"`
	RoundingRule       string          `json:"rounding_rule"`
	RoundingDirection  string          `json:"rounding_direction"`
	BreakPolicy        string          `json:"break_policy"`
	OvertimeRule       string          `json:"overtime_rule"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	PayPeriodsPerMonth int             `json:"pay_periods_per_month"`
	GracePeriodMinutes int             `json:"grace_period_minutes"`
}

func ToSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		CompanyID:          s.CompanyID,
		Timezone:           s.Timezone,
		Currency:           s.Currency,
		RoundingRule:       string(s.RoundingRule),
		RoundingDirection:  s.RoundingDirection,
		BreakPolicy:        string(s.BreakPolicy),
		OvertimeRule:       string(s.OvertimeRule),
		OvertimeMultiplier: s.OvertimeMultiplier,
		PayPeriodsPerMonth: s.PayPeriodsPerMonth,
		GracePeriodMinutes: s.GracePeriodMinutes,
	}
}
