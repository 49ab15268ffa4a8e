package employee

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{EmployeeRepository: employeeRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		CompanyID:      act.CompanyID,
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Department:     req.Department,
		Position:       req.Position,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		IsActive:       true,
	}
	if req.HiredAt != nil {
		hiredAt, err := validator.ParseDate(*req.HiredAt)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.HiredAt = &hiredAt
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.List(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// SetPIN implements employee.EmployeeService. Only the bcrypt hash is stored;
// the plaintext PIN exists nowhere past this call.
func (s *EmployeeServiceImpl) SetPIN(ctx context.Context, id string, req employee.SetPINRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, id, act.CompanyID); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	return s.EmployeeRepository.SetPINHash(ctx, id, act.CompanyID, string(hash))
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, id, act.CompanyID); err != nil {
		return err
	}
	return s.EmployeeRepository.Deactivate(ctx, id, act.CompanyID)
}
