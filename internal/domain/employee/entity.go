package employee

import (
	"time"
)

type Employee struct {
	ID             string
	CompanyID      string
	EmployeeNumber int
	FirstName      string
	LastName       string
	Department     *string
	Position       *string
	EmploymentType EmploymentType
	IsActive       bool
	PinHash        *string
	HiredAt        *time.Time
	TerminatedAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

type EmploymentType string

const (
	EmploymentTypeHourly   EmploymentType = "HOURLY"
	EmploymentTypeDaily    EmploymentType = "DAILY"
	EmploymentTypeSalaried EmploymentType = "SALARIED"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentTypeHourly, EmploymentTypeDaily, EmploymentTypeSalaried:
		return true
	}
	return false
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
