package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is an effective-dated pay rate. Records are superseded, never
// deleted; the history is the payroll audit trail.
type Record struct {
	ID              string
	EmployeeID      string
	Type            Type
	HourlyRate      *decimal.Decimal
	DailyRate       *decimal.Decimal
	MonthlySalary   *decimal.Decimal
	EffectiveFrom   time.Time
	EffectiveTo     *time.Time
	CreatedByUserID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Type string

const (
	TypeHourly   Type = "HOURLY"
	TypeDaily    Type = "DAILY"
	TypeSalaried Type = "SALARIED"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHourly, TypeDaily, TypeSalaried:
		return true
	}
	return false
}

// Rate returns the populated rate for the record's type.
func (r Record) Rate() decimal.Decimal {
	switch r.Type {
	case TypeHourly:
		if r.HourlyRate != nil {
			return *r.HourlyRate
		}
	case TypeDaily:
		if r.DailyRate != nil {
			return *r.DailyRate
		}
	case TypeSalaried:
		if r.MonthlySalary != nil {
			return *r.MonthlySalary
		}
	}
	return decimal.Zero
}
