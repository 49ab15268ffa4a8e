package payslip

import "context"

// PayslipRepository persists payslips and their items. Create must surface a
// unique (employee_id, pay_period_id) violation as ErrPayslipExists.
type PayslipRepository interface {
	Create(ctx context.Context, slip Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)

	GetByEmployeeAndPeriod(ctx context.Context, employeeID, payPeriodID string) (*Payslip, error)

	ListByCompany(ctx context.Context, companyID string) ([]Payslip, error)

	// UpdateStatus writes status stamps and, on finalize, the snapshot.
	UpdateStatus(ctx context.Context, slip Payslip) error
}

type PayslipService interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	Get(ctx context.Context, id string) (PayslipResponse, error)
	List(ctx context.Context) ([]PayslipResponse, error)
	Finalize(ctx context.Context, id string) (PayslipResponse, error)
	Void(ctx context.Context, id string) (PayslipResponse, error)
}
