package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	ts.id, ts.employee_id, ts.pay_period_id, ts.status, ts.generated_at,
	ts.reviewed_at, ts.reviewed_by_user_id, ts.approved_at, ts.approved_by_user_id,
	ts.locked_at, ts.locked_by_user_id, ts.created_at, ts.updated_at
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.PayPeriodID, &ts.Status, &ts.GeneratedAt,
		&ts.ReviewedAt, &ts.ReviewedByUserID, &ts.ApprovedAt, &ts.ApprovedByUserID,
		&ts.LockedAt, &ts.LockedByUserID, &ts.CreatedAt, &ts.UpdatedAt,
	)
	return ts, err
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (employee_id, pay_period_id, status, generated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ts.EmployeeID, ts.PayPeriodID, ts.Status, ts.GeneratedAt,
	).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetExists
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return ts, nil
}

// GetByID implements timesheet.TimesheetRepository. Company isolation goes
// through the pay period, which owns the company id.
func (r *timesheetRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets ts
		JOIN pay_periods pp ON pp.id = ts.pay_period_id
		WHERE ts.id = $1 AND pp.company_id = $2 AND ts.deleted_at IS NULL
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}

	if ts.Days, err = r.loadDays(ctx, q, ts.ID); err != nil {
		return timesheet.Timesheet{}, err
	}

	return ts, nil
}

func (r *timesheetRepository) loadDays(ctx context.Context, q database.Querier, timesheetID string) ([]timesheet.Day, error) {
	rows, err := q.Query(ctx, `
		SELECT id, timesheet_id, work_date, regular_minutes, break_minutes, overtime_minutes, created_at, updated_at
		FROM timesheet_days
		WHERE timesheet_id = $1 AND deleted_at IS NULL
		ORDER BY work_date ASC
	`, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheet days: %w", err)
	}
	defer rows.Close()

	var days []timesheet.Day
	dayIndex := map[string]int{}
	for rows.Next() {
		var d timesheet.Day
		if err := rows.Scan(&d.ID, &d.TimesheetID, &d.WorkDate, &d.RegularMinutes, &d.BreakMinutes, &d.OvertimeMinutes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet day: %w", err)
		}
		dayIndex[d.ID] = len(days)
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}

	anomalyRows, err := q.Query(ctx, `
		SELECT a.id, a.timesheet_day_id, a.code, a.severity, a.message, a.meta_json, a.created_at
		FROM timesheet_anomalies a
		JOIN timesheet_days d ON d.id = a.timesheet_day_id
		WHERE d.timesheet_id = $1 AND a.deleted_at IS NULL
		ORDER BY a.created_at ASC
	`, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheet anomalies: %w", err)
	}
	defer anomalyRows.Close()

	for anomalyRows.Next() {
		var a timesheet.Anomaly
		if err := anomalyRows.Scan(&a.ID, &a.TimesheetDayID, &a.Code, &a.Severity, &a.Message, &a.MetaJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet anomaly: %w", err)
		}
		if idx, ok := dayIndex[a.TimesheetDayID]; ok {
			days[idx].Anomalies = append(days[idx].Anomalies, a)
		}
	}
	if err := anomalyRows.Err(); err != nil {
		return nil, err
	}

	adjustmentRows, err := q.Query(ctx, `
		SELECT adj.id, adj.timesheet_day_id, adj.field, adj.mode, adj.delta_minutes,
		       adj.override_minutes, adj.reason, adj.created_by_user_id, adj.created_at
		FROM timesheet_adjustments adj
		JOIN timesheet_days d ON d.id = adj.timesheet_day_id
		WHERE d.timesheet_id = $1 AND adj.deleted_at IS NULL
		ORDER BY adj.created_at ASC
	`, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheet adjustments: %w", err)
	}
	defer adjustmentRows.Close()

	for adjustmentRows.Next() {
		var adj timesheet.Adjustment
		if err := adjustmentRows.Scan(&adj.ID, &adj.TimesheetDayID, &adj.Field, &adj.Mode, &adj.DeltaMinutes, &adj.OverrideMinutes, &adj.Reason, &adj.CreatedByUserID, &adj.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet adjustment: %w", err)
		}
		if idx, ok := dayIndex[adj.TimesheetDayID]; ok {
			days[idx].Adjustments = append(days[idx].Adjustments, adj)
		}
	}

	return days, adjustmentRows.Err()
}

// GetByEmployeeAndPeriod implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID, payPeriodID string) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets ts
		WHERE ts.employee_id = $1 AND ts.pay_period_id = $2 AND ts.deleted_at IS NULL
	`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, payPeriodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet for period: %w", err)
	}

	if ts.Days, err = r.loadDays(ctx, q, ts.ID); err != nil {
		return nil, err
	}

	return &ts, nil
}

// ListByCompany implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListByCompany(ctx context.Context, companyID string) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets ts
		JOIN pay_periods pp ON pp.id = ts.pay_period_id
		WHERE pp.company_id = $1 AND ts.deleted_at IS NULL
		ORDER BY pp.start_date DESC, ts.created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, ts)
	}

	return sheets, rows.Err()
}

// UpdateStatus implements timesheet.TimesheetRepository.
func (r *timesheetRepository) UpdateStatus(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE timesheets SET
			status = $1,
			reviewed_at = $2, reviewed_by_user_id = $3,
			approved_at = $4, approved_by_user_id = $5,
			locked_at = $6, locked_by_user_id = $7,
			updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`, ts.Status, ts.ReviewedAt, ts.ReviewedByUserID, ts.ApprovedAt, ts.ApprovedByUserID,
		ts.LockedAt, ts.LockedByUserID, ts.ID)
	if err != nil {
		return fmt.Errorf("failed to update timesheet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}

	return nil
}

// ReplaceDays implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ReplaceDays(ctx context.Context, timesheetID string, days []timesheet.Day) ([]timesheet.Day, error) {
	q := GetQuerier(ctx, r.db)

	// Anomalies and adjustments cascade with their day rows.
	if _, err := q.Exec(ctx, `DELETE FROM timesheet_days WHERE timesheet_id = $1`, timesheetID); err != nil {
		return nil, fmt.Errorf("failed to clear timesheet days: %w", err)
	}

	inserted := make([]timesheet.Day, 0, len(days))
	for _, day := range days {
		err := q.QueryRow(ctx, `
			INSERT INTO timesheet_days (timesheet_id, work_date, regular_minutes, break_minutes, overtime_minutes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, timesheetID, day.WorkDate, day.RegularMinutes, day.BreakMinutes, day.OvertimeMinutes).
			Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert timesheet day: %w", err)
		}
		day.TimesheetID = timesheetID

		savedAnomalies := make([]timesheet.Anomaly, 0, len(day.Anomalies))
		for _, anomaly := range day.Anomalies {
			anomaly.TimesheetDayID = day.ID
			err := q.QueryRow(ctx, `
				INSERT INTO timesheet_anomalies (timesheet_day_id, code, severity, message, meta_json)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, created_at
			`, day.ID, anomaly.Code, anomaly.Severity, anomaly.Message, anomaly.MetaJSON).
				Scan(&anomaly.ID, &anomaly.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to insert timesheet anomaly: %w", err)
			}
			savedAnomalies = append(savedAnomalies, anomaly)
		}
		day.Anomalies = savedAnomalies

		inserted = append(inserted, day)
	}

	return inserted, nil
}

// GetDayByDate implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetDayByDate(ctx context.Context, timesheetID string, workDate time.Time) (timesheet.Day, error) {
	q := GetQuerier(ctx, r.db)

	var d timesheet.Day
	err := q.QueryRow(ctx, `
		SELECT id, timesheet_id, work_date, regular_minutes, break_minutes, overtime_minutes, created_at, updated_at
		FROM timesheet_days
		WHERE timesheet_id = $1 AND work_date = $2 AND deleted_at IS NULL
	`, timesheetID, workDate).
		Scan(&d.ID, &d.TimesheetID, &d.WorkDate, &d.RegularMinutes, &d.BreakMinutes, &d.OvertimeMinutes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Day{}, timesheet.ErrDayNotFound
		}
		return timesheet.Day{}, fmt.Errorf("failed to get timesheet day: %w", err)
	}

	return d, nil
}

// CreateAdjustment implements timesheet.TimesheetRepository.
func (r *timesheetRepository) CreateAdjustment(ctx context.Context, adj timesheet.Adjustment) (timesheet.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO timesheet_adjustments (timesheet_day_id, field, mode, delta_minutes, override_minutes, reason, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, adj.TimesheetDayID, adj.Field, adj.Mode, adj.DeltaMinutes, adj.OverrideMinutes, adj.Reason, adj.CreatedByUserID).
		Scan(&adj.ID, &adj.CreatedAt)
	if err != nil {
		return timesheet.Adjustment{}, fmt.Errorf("failed to create timesheet adjustment: %w", err)
	}

	return adj, nil
}

// ListAdjustmentsByTimesheet implements timesheet.TimesheetRepository.
func (r *timesheetRepository) ListAdjustmentsByTimesheet(ctx context.Context, timesheetID string) ([]timesheet.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT adj.id, adj.timesheet_day_id, adj.field, adj.mode, adj.delta_minutes,
		       adj.override_minutes, adj.reason, adj.created_by_user_id, adj.created_at
		FROM timesheet_adjustments adj
		JOIN timesheet_days d ON d.id = adj.timesheet_day_id
		WHERE d.timesheet_id = $1 AND adj.deleted_at IS NULL
		ORDER BY adj.created_at ASC
	`, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []timesheet.Adjustment
	for rows.Next() {
		var adj timesheet.Adjustment
		if err := rows.Scan(&adj.ID, &adj.TimesheetDayID, &adj.Field, &adj.Mode, &adj.DeltaMinutes, &adj.OverrideMinutes, &adj.Reason, &adj.CreatedByUserID, &adj.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	return adjustments, rows.Err()
}

// UpdateDayMinutes implements timesheet.TimesheetRepository.
func (r *timesheetRepository) UpdateDayMinutes(ctx context.Context, day timesheet.Day) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE timesheet_days SET regular_minutes = $1, break_minutes = $2, overtime_minutes = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`, day.RegularMinutes, day.BreakMinutes, day.OvertimeMinutes, day.ID)
	if err != nil {
		return fmt.Errorf("failed to update timesheet day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrDayNotFound
	}

	return nil
}
