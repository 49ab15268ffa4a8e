package company

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Setting holds the company-level attendance and payroll policy. One row per
// company; every field has a default so a fresh company computes sane values.
type Setting struct {
	ID                 string
	CompanyID          string
	Timezone           string
	Currency           string
	RoundingRule       RoundingRule
	RoundingDirection  string
	BreakPolicy        BreakPolicy
	OvertimeRule       OvertimeRule
	OvertimeMultiplier decimal.Decimal
	PayPeriodsPerMonth int
	GracePeriodMinutes int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type RoundingRule string

const (
	RoundingNone      RoundingRule = "NONE"
	RoundingNearest5  RoundingRule = "NEAREST_5"
	RoundingNearest10 RoundingRule = "NEAREST_10"
	RoundingNearest15 RoundingRule = "NEAREST_15"
)

// IntervalMinutes translates the rule into the rounding interval, 0 meaning
// no rounding.
func (r RoundingRule) IntervalMinutes() int {
	switch r {
	case RoundingNearest5:
		return 5
	case RoundingNearest10:
		return 10
	case RoundingNearest15:
		return 15
	}
	return 0
}

func (r RoundingRule) Valid() bool {
	switch r {
	case RoundingNone, RoundingNearest5, RoundingNearest10, RoundingNearest15:
		return true
	}
	return false
}

type BreakPolicy string

const (
	BreakUnpaid BreakPolicy = "UNPAID"
	BreakPaid   BreakPolicy = "PAID"
)

func (b BreakPolicy) Valid() bool {
	return b == BreakUnpaid || b == BreakPaid
}

type OvertimeRule string

const (
	OvertimeNone       OvertimeRule = "NONE"
	OvertimeDailyOver8 OvertimeRule = "DAILY_OVER_8H"
)

func (o OvertimeRule) Valid() bool {
	return o == OvertimeNone || o == OvertimeDailyOver8
}

// DefaultSetting returns the policy applied before a company saves its own.
func DefaultSetting(companyID string) Setting {
	return Setting{
		CompanyID:          companyID,
		Timezone:           "Asia/Manila",
		Currency:           "PHP",
		RoundingRule:       RoundingNone,
		RoundingDirection:  "nearest",
		BreakPolicy:        BreakUnpaid,
		OvertimeRule:       OvertimeNone,
		OvertimeMultiplier: decimal.NewFromFloat(1.25),
		PayPeriodsPerMonth: 2,
		GracePeriodMinutes: 0,
	}
}
