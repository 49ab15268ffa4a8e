package payperiod

import "time"

type PayPeriod struct {
	ID             string
	CompanyID      string
	StartDate      time.Time
	EndDate        time.Time
	Status         Status
	ClosedAt       *time.Time
	ClosedByUserID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)
