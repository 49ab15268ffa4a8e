package compensation

import (
	"context"
	"time"
)

type CompensationRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	// GetOpenEnded returns the employee's record with a null effective_to,
	// nil when none is open.
	GetOpenEnded(ctx context.Context, employeeID string) (*Record, error)

	// CloseRecord sets effective_to on an open record.
	CloseRecord(ctx context.Context, id string, effectiveTo time.Time) error

	// GetLatest returns the record with the highest effective_from, the
	// reference meaning of "current". ErrCompensationNotFound when empty.
	GetLatest(ctx context.Context, employeeID string) (Record, error)

	// ListHistory returns all records, newest effective_from first.
	ListHistory(ctx context.Context, employeeID string) ([]Record, error)
}

type CompensationService interface {
	Add(ctx context.Context, employeeID string, req CreateCompensationRequest) (CompensationResponse, error)
	GetCurrent(ctx context.Context, employeeID string, asOf time.Time) (CompensationResponse, error)
	GetHistory(ctx context.Context, employeeID string) ([]CompensationResponse, error)
}
