package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is the pay computation for one employee and pay period. Once
// finalized it is immutable except for voiding; the snapshot preserves the
// inputs the numbers were computed from.
type Payslip struct {
	ID                   string
	EmployeeID           string
	PayPeriodID          string
	Status               Status
	Currency             string
	TotalRegularMinutes  int
	TotalOvertimeMinutes int
	GrossPay             decimal.Decimal
	TotalDeductions      decimal.Decimal
	NetPay               decimal.Decimal
	SnapshotJSON         *string
	GeneratedByUserID    *string
	GeneratedAt          *time.Time
	FinalizedAt          *time.Time
	VoidedAt             *time.Time
	VoidedByUserID       *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Items []Item
}

// Item is one itemized earning or deduction line.
type Item struct {
	ID        string
	PayslipID string
	Type      ItemType
	Code      string
	Label     string
	Amount    decimal.Decimal
	MetaJSON  *string
}

type ItemType string

const (
	ItemEarning   ItemType = "EARNING"
	ItemDeduction ItemType = "DEDUCTION"
)

// Snapshot captures the computation inputs at finalization time for audit.
type Snapshot struct {
	EmployeeID           string          `json:"employee_id"`
	PayPeriodID          string          `json:"pay_period_id"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	CompensationType     string          `json:"compensation_type"`
	Rate                 decimal.Decimal `json:"rate"`
	TotalRegularMinutes  int             `json:"total_regular_minutes"`
	TotalOvertimeMinutes int             `json:"total_overtime_minutes"`
	DaysWorked           int             `json:"days_worked"`
	OvertimeMultiplier   decimal.Decimal `json:"overtime_multiplier"`
	PayPeriodsPerMonth   int             `json:"pay_periods_per_month"`
}
