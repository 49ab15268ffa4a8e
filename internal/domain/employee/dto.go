package employee

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeNumber int     `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	EmploymentType string  `json:"employment_type"`
	HiredAt        *string `json:"hired_at,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeNumber <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_number", Message: "must be a positive integer"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !EmploymentType(r.EmploymentType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be HOURLY, DAILY or SALARIED"})
	}
	if r.HiredAt != nil && !validator.IsValidDate(*r.HiredAt) {
		errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetPINRequest struct {
	PIN string `json:"pin"`
}

func (r SetPINRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.PIN) < 4 || len(r.PIN) > 8 || !validator.IsNumeric(r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "must be 4-8 digits"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string     `json:"id"`
	EmployeeNumber int        `json:"employee_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Department     *string    `json:"department,omitempty"`
	Position       *string    `json:"position,omitempty"`
	EmploymentType string     `json:"employment_type"`
	IsActive       bool       `json:"is_active"`
	HasPIN         bool       `json:"has_pin"`
	HiredAt        *time.Time `json:"hired_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Department:     e.Department,
		Position:       e.Position,
		EmploymentType: string(e.EmploymentType),
		IsActive:       e.IsActive,
		HasPIN:         e.PinHash != nil,
		HiredAt:        e.HiredAt,
		CreatedAt:      e.CreatedAt,
	}
}
