package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type timeEventRepository struct {
	db *database.DB
}

func NewTimeEventRepository(db *database.DB) timeevent.TimeEventRepository {
	return &timeEventRepository{db: db}
}

const timeEventColumns = `
	id, employee_id, type, happened_at, source, request_id,
	device_id, ip_address, created_by_user_id, meta_json, created_at
`

func scanTimeEvent(row pgx.Row) (timeevent.TimeEvent, error) {
	var ev timeevent.TimeEvent
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Type, &ev.HappenedAt, &ev.Source, &ev.RequestID,
		&ev.DeviceID, &ev.IPAddress, &ev.CreatedByUserID, &ev.MetaJSON, &ev.CreatedAt,
	)
	return ev, err
}

// Create implements timeevent.TimeEventRepository.
func (r *timeEventRepository) Create(ctx context.Context, event timeevent.TimeEvent) (timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_events (
			employee_id, type, happened_at, source, request_id,
			device_id, ip_address, created_by_user_id, meta_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.EmployeeID, event.Type, event.HappenedAt, event.Source, event.RequestID,
		event.DeviceID, event.IPAddress, event.CreatedByUserID, event.MetaJSON,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timeevent.TimeEvent{}, timeevent.ErrDuplicateRequestID
		}
		return timeevent.TimeEvent{}, fmt.Errorf("failed to create time event: %w", err)
	}

	return event, nil
}

// GetByRequestID implements timeevent.TimeEventRepository.
func (r *timeEventRepository) GetByRequestID(ctx context.Context, requestID string) (*timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEventColumns + `
		FROM time_events
		WHERE request_id = $1 AND deleted_at IS NULL
	`

	ev, err := scanTimeEvent(q.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time event by request id: %w", err)
	}

	return &ev, nil
}

// GetLatestByEmployee implements timeevent.TimeEventRepository.
func (r *timeEventRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (*timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEventColumns + `
		FROM time_events
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY happened_at DESC, created_at DESC
		LIMIT 1
	`

	ev, err := scanTimeEvent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest time event: %w", err)
	}

	return &ev, nil
}

// ListRecentByEmployee implements timeevent.TimeEventRepository.
func (r *timeEventRepository) ListRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEventColumns + `
		FROM time_events
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY happened_at DESC, created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent time events: %w", err)
	}
	defer rows.Close()

	return collectTimeEvents(rows)
}

// ListByEmployeeBetween implements timeevent.TimeEventRepository.
func (r *timeEventRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]timeevent.TimeEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEventColumns + `
		FROM time_events
		WHERE employee_id = $1
		  AND happened_at >= $2
		  AND happened_at < $3
		  AND deleted_at IS NULL
		ORDER BY happened_at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time events for range: %w", err)
	}
	defer rows.Close()

	return collectTimeEvents(rows)
}

func collectTimeEvents(rows pgx.Rows) ([]timeevent.TimeEvent, error) {
	var events []timeevent.TimeEvent
	for rows.Next() {
		ev, err := scanTimeEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
