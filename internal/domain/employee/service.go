package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	SetPIN(ctx context.Context, id string, req SetPINRequest) error
	Deactivate(ctx context.Context, id string) error
}
