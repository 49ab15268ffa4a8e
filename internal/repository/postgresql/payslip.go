package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	ps.id, ps.employee_id, ps.pay_period_id, ps.status, ps.currency,
	ps.total_regular_minutes, ps.total_overtime_minutes,
	ps.gross_pay, ps.total_deductions, ps.net_pay, ps.snapshot_json,
	ps.generated_by_user_id, ps.generated_at, ps.finalized_at,
	ps.voided_at, ps.voided_by_user_id, ps.created_at, ps.updated_at
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PayPeriodID, &p.Status, &p.Currency,
		&p.TotalRegularMinutes, &p.TotalOvertimeMinutes,
		&p.GrossPay, &p.TotalDeductions, &p.NetPay, &p.SnapshotJSON,
		&p.GeneratedByUserID, &p.GeneratedAt, &p.FinalizedAt,
		&p.VoidedAt, &p.VoidedByUserID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payslip.PayslipRepository. Items are written with the
// payslip in one statement sequence; callers run it inside a transaction.
func (r *payslipRepository) Create(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, pay_period_id, status, currency,
			total_regular_minutes, total_overtime_minutes,
			gross_pay, total_deductions, net_pay,
			generated_by_user_id, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		slip.EmployeeID, slip.PayPeriodID, slip.Status, slip.Currency,
		slip.TotalRegularMinutes, slip.TotalOvertimeMinutes,
		slip.GrossPay, slip.TotalDeductions, slip.NetPay,
		slip.GeneratedByUserID, slip.GeneratedAt,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payslip.Payslip{}, payslip.ErrPayslipExists
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	savedItems := make([]payslip.Item, 0, len(slip.Items))
	for _, item := range slip.Items {
		item.PayslipID = slip.ID
		err := q.QueryRow(ctx, `
			INSERT INTO payslip_items (payslip_id, type, code, label, amount, meta_json)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, slip.ID, item.Type, item.Code, item.Label, item.Amount, item.MetaJSON).Scan(&item.ID)
		if err != nil {
			return payslip.Payslip{}, fmt.Errorf("failed to create payslip item: %w", err)
		}
		savedItems = append(savedItems, item)
	}
	slip.Items = savedItems

	return slip, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips ps
		JOIN pay_periods pp ON pp.id = ps.pay_period_id
		WHERE ps.id = $1 AND pp.company_id = $2 AND ps.deleted_at IS NULL
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	if slip.Items, err = r.loadItems(ctx, q, slip.ID); err != nil {
		return payslip.Payslip{}, err
	}

	return slip, nil
}

func (r *payslipRepository) loadItems(ctx context.Context, q database.Querier, payslipID string) ([]payslip.Item, error) {
	rows, err := q.Query(ctx, `
		SELECT id, payslip_id, type, code, label, amount, meta_json
		FROM payslip_items
		WHERE payslip_id = $1 AND deleted_at IS NULL
		ORDER BY type ASC, code ASC
	`, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payslip items: %w", err)
	}
	defer rows.Close()

	var items []payslip.Item
	for rows.Next() {
		var item payslip.Item
		if err := rows.Scan(&item.ID, &item.PayslipID, &item.Type, &item.Code, &item.Label, &item.Amount, &item.MetaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan payslip item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetByEmployeeAndPeriod implements payslip.PayslipRepository.
func (r *payslipRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID, payPeriodID string) (*payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips ps
		WHERE ps.employee_id = $1 AND ps.pay_period_id = $2 AND ps.deleted_at IS NULL
	`

	slip, err := scanPayslip(q.QueryRow(ctx, query, employeeID, payPeriodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payslip for period: %w", err)
	}

	return &slip, nil
}

// ListByCompany implements payslip.PayslipRepository.
func (r *payslipRepository) ListByCompany(ctx context.Context, companyID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips ps
		JOIN pay_periods pp ON pp.id = ps.pay_period_id
		WHERE pp.company_id = $1 AND ps.deleted_at IS NULL
		ORDER BY pp.start_date DESC, ps.created_at ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, slip)
	}

	return slips, rows.Err()
}

// UpdateStatus implements payslip.PayslipRepository.
func (r *payslipRepository) UpdateStatus(ctx context.Context, slip payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payslips SET
			status = $1,
			snapshot_json = $2,
			finalized_at = $3,
			voided_at = $4, voided_by_user_id = $5,
			updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
	`, slip.Status, slip.SnapshotJSON, slip.FinalizedAt, slip.VoidedAt, slip.VoidedByUserID, slip.ID)
	if err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}
