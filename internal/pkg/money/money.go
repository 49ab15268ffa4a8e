package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places carried on currency
// amounts.
const DefaultPrecision = 2

// RoundCurrency rounds to DefaultPrecision, half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(DefaultPrecision)
}

// Round rounds to the given number of decimal places, half away from zero.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// GrossPayHourly computes pay for a minute count at an hourly rate. Overtime
// minutes are paid at rate times multiplier.
func GrossPayHourly(regularMinutes, overtimeMinutes int, hourlyRate, overtimeMultiplier decimal.Decimal) decimal.Decimal {
	sixty := decimal.NewFromInt(60)
	regular := decimal.NewFromInt(int64(regularMinutes)).Div(sixty).Mul(hourlyRate)
	overtime := decimal.NewFromInt(int64(overtimeMinutes)).Div(sixty).Mul(hourlyRate).Mul(overtimeMultiplier)
	return RoundCurrency(regular.Add(overtime))
}

// GrossPayDaily computes pay for a count of days worked at a daily rate.
func GrossPayDaily(daysWorked int, dailyRate decimal.Decimal) decimal.Decimal {
	return RoundCurrency(dailyRate.Mul(decimal.NewFromInt(int64(daysWorked))))
}

// GrossPaySalaried computes one period's share of a monthly salary. A
// periodsPerMonth of zero or less is treated as one period.
func GrossPaySalaried(monthlySalary decimal.Decimal, periodsPerMonth int) decimal.Decimal {
	if periodsPerMonth <= 0 {
		periodsPerMonth = 1
	}
	return RoundCurrency(monthlySalary.Div(decimal.NewFromInt(int64(periodsPerMonth))))
}

// FormatCurrency renders an amount with a currency symbol and thousands
// separators, e.g. "$1,234.50".
func FormatCurrency(d decimal.Decimal, symbol string) string {
	fixed := RoundCurrency(d).StringFixed(DefaultPrecision)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	out := symbol + groupThousands(whole) + "." + frac
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
