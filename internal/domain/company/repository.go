package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
}

// SettingRepository reads and writes the single policy row per company.
type SettingRepository interface {
	// GetByCompany returns the company's settings, or ErrSettingNotFound when
	// the company never saved any. Callers fall back to DefaultSetting.
	GetByCompany(ctx context.Context, companyID string) (Setting, error)

	Upsert(ctx context.Context, setting Setting) (Setting, error)
}

type SettingService interface {
	Get(ctx context.Context) (SettingResponse, error)
	Update(ctx context.Context, req UpdateSettingRequest) (SettingResponse, error)
}
