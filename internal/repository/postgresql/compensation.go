package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.CompensationRepository {
	return &compensationRepository{db: db}
}

const compensationColumns = `
	id, employee_id, type, hourly_rate, daily_rate, monthly_salary,
	effective_from, effective_to, created_by_user_id, created_at, updated_at
`

func scanCompensation(row pgx.Row) (compensation.Record, error) {
	var rec compensation.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Type, &rec.HourlyRate, &rec.DailyRate,
		&rec.MonthlySalary, &rec.EffectiveFrom, &rec.EffectiveTo,
		&rec.CreatedByUserID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements compensation.CompensationRepository.
func (r *compensationRepository) Create(ctx context.Context, rec compensation.Record) (compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_compensation (
			employee_id, type, hourly_rate, daily_rate, monthly_salary,
			effective_from, effective_to, created_by_user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Type, rec.HourlyRate, rec.DailyRate, rec.MonthlySalary,
		rec.EffectiveFrom, rec.EffectiveTo, rec.CreatedByUserID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return compensation.Record{}, fmt.Errorf("failed to create compensation record: %w", err)
	}

	return rec, nil
}

// GetOpenEnded implements compensation.CompensationRepository.
func (r *compensationRepository) GetOpenEnded(ctx context.Context, employeeID string) (*compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + compensationColumns + `
		FROM employee_compensation
		WHERE employee_id = $1 AND effective_to IS NULL AND deleted_at IS NULL
		ORDER BY effective_from DESC
		LIMIT 1
	`

	rec, err := scanCompensation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open compensation record: %w", err)
	}

	return &rec, nil
}

// CloseRecord implements compensation.CompensationRepository.
func (r *compensationRepository) CloseRecord(ctx context.Context, id string, effectiveTo time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employee_compensation SET effective_to = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, effectiveTo, id)
	if err != nil {
		return fmt.Errorf("failed to close compensation record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return compensation.ErrCompensationNotFound
	}

	return nil
}

// GetLatest implements compensation.CompensationRepository.
func (r *compensationRepository) GetLatest(ctx context.Context, employeeID string) (compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + compensationColumns + `
		FROM employee_compensation
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY effective_from DESC
		LIMIT 1
	`

	rec, err := scanCompensation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return compensation.Record{}, compensation.ErrCompensationNotFound
		}
		return compensation.Record{}, fmt.Errorf("failed to get latest compensation: %w", err)
	}

	return rec, nil
}

// ListHistory implements compensation.CompensationRepository.
func (r *compensationRepository) ListHistory(ctx context.Context, employeeID string) ([]compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + compensationColumns + `
		FROM employee_compensation
		WHERE employee_id = $1 AND deleted_at IS NULL
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation history: %w", err)
	}
	defer rows.Close()

	var records []compensation.Record
	for rows.Next() {
		rec, err := scanCompensation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
