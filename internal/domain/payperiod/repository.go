package payperiod

import "context"

type PayPeriodRepository interface {
	Create(ctx context.Context, period PayPeriod) (PayPeriod, error)

	// GetByID retrieves a pay period scoped to a company.
	GetByID(ctx context.Context, id string, companyID string) (PayPeriod, error)

	List(ctx context.Context, companyID string) ([]PayPeriod, error)
}

type PayPeriodService interface {
	Create(ctx context.Context, req CreatePayPeriodRequest) (PayPeriodResponse, error)
	List(ctx context.Context) ([]PayPeriodResponse, error)
	Get(ctx context.Context, id string) (PayPeriodResponse, error)
}
