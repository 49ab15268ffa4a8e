package employee

import (
	"context"
)

// EmployeeRepository defines data access for employee records. All lookups
// that serve admin endpoints take companyID to keep tenants isolated; kiosk
// lookups go by employee number only because the kiosk has no company claim.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetByNumber resolves a kiosk employee number to its record.
	GetByNumber(ctx context.Context, employeeNumber int) (Employee, error)

	// ListActive returns all active employees of a company.
	ListActive(ctx context.Context, companyID string) ([]Employee, error)

	List(ctx context.Context, companyID string) ([]Employee, error)

	SetPINHash(ctx context.Context, id string, companyID string, pinHash string) error

	Deactivate(ctx context.Context, id string, companyID string) error

	// LockForUpdate takes a row lock on the employee inside the current
	// transaction. The time-event recorder uses it to serialize concurrent
	// clock events for one employee.
	LockForUpdate(ctx context.Context, id string) error
}
