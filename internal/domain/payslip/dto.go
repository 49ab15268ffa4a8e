package payslip

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DeductionInput struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type GeneratePayslipRequest struct {
	EmployeeID  string           `json:"employee_id"`
	PayPeriodID string           `json:"pay_period_id"`
	Deductions  []DeductionInput `json:"deductions,omitempty"`
}

func (r GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "is required"})
	}
	for _, d := range r.Deductions {
		if validator.IsEmpty(d.Code) || validator.IsEmpty(d.Label) {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "each deduction needs code and label"})
			break
		}
		if d.Amount.LessThan(decimal.Zero) {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "amounts must not be negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemResponse struct {
	Type   string          `json:"type"`
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type PayslipResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	PayPeriodID          string          `json:"pay_period_id"`
	Status               string          `json:"status"`
	Currency             string          `json:"currency"`
	TotalRegularMinutes  int             `json:"total_regular_minutes"`
	TotalOvertimeMinutes int             `json:"total_overtime_minutes"`
	GrossPay             decimal.Decimal `json:"gross_pay"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetPay               decimal.Decimal `json:"net_pay"`
	GeneratedAt          *time.Time      `json:"generated_at,omitempty"`
	FinalizedAt          *time.Time      `json:"finalized_at,omitempty"`
	VoidedAt             *time.Time      `json:"voided_at,omitempty"`
	Items                []ItemResponse  `json:"items,omitempty"`
}

func ToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		PayPeriodID:          p.PayPeriodID,
		Status:               string(p.Status),
		Currency:             p.Currency,
		TotalRegularMinutes:  p.TotalRegularMinutes,
		TotalOvertimeMinutes: p.TotalOvertimeMinutes,
		GrossPay:             p.GrossPay,
		TotalDeductions:      p.TotalDeductions,
		NetPay:               p.NetPay,
		GeneratedAt:          p.GeneratedAt,
		FinalizedAt:          p.FinalizedAt,
		VoidedAt:             p.VoidedAt,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, ItemResponse{
			Type:   string(item.Type),
			Code:   item.Code,
			Label:  item.Label,
			Amount: item.Amount,
		})
	}
	return resp
}
