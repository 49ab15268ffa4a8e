package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}

const payPeriodColumns = `
	id, company_id, start_date, end_date, status, closed_at, closed_by_user_id, created_at, updated_at
`

func scanPayPeriod(row pgx.Row) (payperiod.PayPeriod, error) {
	var p payperiod.PayPeriod
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Status,
		&p.ClosedAt, &p.ClosedByUserID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) Create(ctx context.Context, period payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (company_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		period.CompanyID, period.StartDate, period.EndDate, period.Status,
	).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodOverlap
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return period, nil
}

// GetByID implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) GetByID(ctx context.Context, id string, companyID string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payPeriodColumns + `
		FROM pay_periods
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	period, err := scanPayPeriod(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return period, nil
}

// List implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) List(ctx context.Context, companyID string) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payPeriodColumns + `
		FROM pay_periods
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payperiod.PayPeriod
	for rows.Next() {
		period, err := scanPayPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, period)
	}

	return periods, rows.Err()
}
