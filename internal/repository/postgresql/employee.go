package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, employee_number, first_name, last_name, department, position,
	employment_type, is_active, pin_hash, hired_at, terminated_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName,
		&emp.Department, &emp.Position, &emp.EmploymentType, &emp.IsActive,
		&emp.PinHash, &emp.HiredAt, &emp.TerminatedAt, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			company_id, employee_number, first_name, last_name, department, position,
			employment_type, is_active, hired_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.CompanyID, emp.EmployeeNumber, emp.FirstName, emp.LastName,
		emp.Department, emp.Position, emp.EmploymentType, emp.IsActive, emp.HiredAt,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeNumberTaken
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByNumber implements employee.EmployeeRepository.
func (r *employeeRepository) GetByNumber(ctx context.Context, employeeNumber int) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_number = $1 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by number: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.list(ctx, companyID, true)
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.list(ctx, companyID, false)
}

func (r *employeeRepository) list(ctx context.Context, companyID string, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
	`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY employee_number ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// SetPINHash implements employee.EmployeeRepository.
func (r *employeeRepository) SetPINHash(ctx context.Context, id string, companyID string, pinHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET pin_hash = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND deleted_at IS NULL
	`, pinHash, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set pin hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepository) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET is_active = FALSE, terminated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// LockForUpdate implements employee.EmployeeRepository. Must run inside a
// transaction; outside one the lock would be released immediately.
func (r *employeeRepository) LockForUpdate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var locked string
	err := q.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to lock employee row: %w", err)
	}

	return nil
}
