package payslip

import (
	"github.com/shopspring/decimal"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/money"
)

// CalcInput is everything the gross pay computation needs, resolved by the
// service before calling Compute.
type CalcInput struct {
	CompensationType   compensation.Type
	Rate               decimal.Decimal
	RegularMinutes     int
	OvertimeMinutes    int
	DaysWorked         int
	OvertimeMultiplier decimal.Decimal
	PayPeriodsPerMonth int
}

// CalcResult carries the gross amount and its itemized earning lines. Each
// line is rounded at currency precision, so the gross is always the exact
// sum of the lines.
type CalcResult struct {
	GrossPay decimal.Decimal
	Earnings []payslip.Item
}

// Compute derives gross pay from timesheet totals and the employee's
// compensation. HOURLY pays the minute buckets at the hourly rate with
// overtime at the multiplier; DAILY pays per day worked; SALARIED pays one
// period's share of the monthly salary. Overtime minutes only earn a line
// under HOURLY compensation, the only type with a per-minute price.
func Compute(in CalcInput) CalcResult {
	var earnings []payslip.Item

	switch in.CompensationType {
	case compensation.TypeHourly:
		base := money.GrossPayHourly(in.RegularMinutes, 0, in.Rate, decimal.Zero)
		earnings = append(earnings, earning("BASE", "Base pay", base))
		if in.OvertimeMinutes > 0 {
			overtime := money.GrossPayHourly(0, in.OvertimeMinutes, in.Rate, in.OvertimeMultiplier)
			earnings = append(earnings, earning("OVERTIME", "Overtime pay", overtime))
		}

	case compensation.TypeDaily:
		earnings = append(earnings, earning("BASE", "Base pay", money.GrossPayDaily(in.DaysWorked, in.Rate)))

	case compensation.TypeSalaried:
		earnings = append(earnings, earning("BASE", "Base pay", money.GrossPaySalaried(in.Rate, in.PayPeriodsPerMonth)))
	}

	gross := decimal.Zero
	for _, item := range earnings {
		gross = gross.Add(item.Amount)
	}

	return CalcResult{GrossPay: gross, Earnings: earnings}
}

func earning(code, label string, amount decimal.Decimal) payslip.Item {
	return payslip.Item{
		Type:   payslip.ItemEarning,
		Code:   code,
		Label:  label,
		Amount: amount,
	}
}

// SumDeductions totals deduction lines at currency precision.
func SumDeductions(items []payslip.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Type == payslip.ItemDeduction {
			total = total.Add(item.Amount)
		}
	}
	return money.RoundCurrency(total)
}
