package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) company.SettingRepository {
	return &settingRepository{db: db}
}

// GetByCompany implements company.SettingRepository.
func (r *settingRepository) GetByCompany(ctx context.Context, companyID string) (company.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, timezone, currency, rounding_rule, rounding_direction,
		       break_policy, overtime_rule, overtime_multiplier, pay_periods_per_month,
		       grace_period_minutes, created_at, updated_at
		FROM settings
		WHERE company_id = $1 AND deleted_at IS NULL
	`

	var s company.Setting
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Timezone, &s.Currency, &s.RoundingRule, &s.RoundingDirection,
		&s.BreakPolicy, &s.OvertimeRule, &s.OvertimeMultiplier, &s.PayPeriodsPerMonth,
		&s.GracePeriodMinutes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Setting{}, company.ErrSettingNotFound
		}
		return company.Setting{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Upsert implements company.SettingRepository.
func (r *settingRepository) Upsert(ctx context.Context, setting company.Setting) (company.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (
			company_id, timezone, currency, rounding_rule, rounding_direction,
			break_policy, overtime_rule, overtime_multiplier, pay_periods_per_month,
			grace_period_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id) WHERE deleted_at IS NULL
		DO UPDATE SET
			timezone = EXCLUDED.timezone,
			currency = EXCLUDED.currency,
			rounding_rule = EXCLUDED.rounding_rule,
			rounding_direction = EXCLUDED.rounding_direction,
			break_policy = EXCLUDED.break_policy,
			overtime_rule = EXCLUDED.overtime_rule,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			pay_periods_per_month = EXCLUDED.pay_periods_per_month,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		setting.CompanyID, setting.Timezone, setting.Currency, setting.RoundingRule,
		setting.RoundingDirection, setting.BreakPolicy, setting.OvertimeRule,
		setting.OvertimeMultiplier, setting.PayPeriodsPerMonth, setting.GracePeriodMinutes,
	).Scan(&setting.ID, &setting.CreatedAt, &setting.UpdatedAt)

	if err != nil {
		return company.Setting{}, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return setting, nil
}

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	var c company.Company
	err := q.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}
