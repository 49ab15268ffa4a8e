package company

import (
	"context"
	"errors"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
)

type SettingServiceImpl struct {
	company.SettingRepository
	company.CompanyRepository
}

func NewSettingService(settingRepo company.SettingRepository, companyRepo company.CompanyRepository) company.SettingService {
	return &SettingServiceImpl{
		SettingRepository: settingRepo,
		CompanyRepository: companyRepo,
	}
}

// Get implements company.SettingService. A company that never saved settings
// sees the defaults, but only if the company itself exists.
func (s *SettingServiceImpl) Get(ctx context.Context) (company.SettingResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return company.SettingResponse{}, err
	}

	setting, err := s.SettingRepository.GetByCompany(ctx, act.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrSettingNotFound) {
			if _, err := s.CompanyRepository.GetByID(ctx, act.CompanyID); err != nil {
				return company.SettingResponse{}, err
			}
			return company.ToSettingResponse(company.DefaultSetting(act.CompanyID)), nil
		}
		return company.SettingResponse{}, err
	}
	return company.ToSettingResponse(setting), nil
}

// Update implements company.SettingService. Partial updates: absent fields
// keep their stored (or default) value.
func (s *SettingServiceImpl) Update(ctx context.Context, req company.UpdateSettingRequest) (company.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return company.SettingResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return company.SettingResponse{}, err
	}

	setting, err := s.SettingRepository.GetByCompany(ctx, act.CompanyID)
	if err != nil {
		if !errors.Is(err, company.ErrSettingNotFound) {
			return company.SettingResponse{}, err
		}
		if _, err := s.CompanyRepository.GetByID(ctx, act.CompanyID); err != nil {
			return company.SettingResponse{}, err
		}
		setting = company.DefaultSetting(act.CompanyID)
	}

	if req.Timezone != nil {
		setting.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		setting.Currency = *req.Currency
	}
	if req.RoundingRule != nil {
		setting.RoundingRule = company.RoundingRule(*req.RoundingRule)
	}
	if req.RoundingDirection != nil {
		setting.RoundingDirection = *req.RoundingDirection
	}
	if req.BreakPolicy != nil {
		setting.BreakPolicy = company.BreakPolicy(*req.BreakPolicy)
	}
	if req.OvertimeRule != nil {
		setting.OvertimeRule = company.OvertimeRule(*req.OvertimeRule)
	}
	if req.OvertimeMultiplier != nil {
		setting.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.PayPeriodsPerMonth != nil {
		setting.PayPeriodsPerMonth = *req.PayPeriodsPerMonth
	}
	if req.GracePeriodMinutes != nil {
		setting.GracePeriodMinutes = *req.GracePeriodMinutes
	}

	saved, err := s.SettingRepository.Upsert(ctx, setting)
	if err != nil {
		return company.SettingResponse{}, err
	}
	return company.ToSettingResponse(saved), nil
}
