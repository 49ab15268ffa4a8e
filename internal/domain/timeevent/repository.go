package timeevent

import (
	"context"
	"time"
)

// TimeEventRepository is append-only storage over the event log. The
// request_id column carries a unique index; Create must surface a violation
// as ErrDuplicateRequestID so the service can resolve the race.
type TimeEventRepository interface {
	Create(ctx context.Context, event TimeEvent) (TimeEvent, error)

	// GetByRequestID serves the idempotency check.
	GetByRequestID(ctx context.Context, requestID string) (*TimeEvent, error)

	// GetLatestByEmployee returns the employee's most recent event, nil when
	// none exists yet.
	GetLatestByEmployee(ctx context.Context, employeeID string) (*TimeEvent, error)

	// ListRecentByEmployee returns up to limit events, newest first.
	ListRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]TimeEvent, error)

	// ListByEmployeeBetween returns events with happened_at inside
	// [from, to), oldest first. The timesheet generator consumes this.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]TimeEvent, error)
}

type TimeEventService interface {
	Record(ctx context.Context, req RecordEventRequest) (EventResponse, error)
	GetStatus(ctx context.Context, employeeNumber string) (StatusResponse, error)
	GetRecentEvents(ctx context.Context, employeeNumber string, limit int) ([]EventResponse, error)
	ServerTime() ServerTimeResponse
}
