package payperiod

import (
	"context"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type PayPeriodServiceImpl struct {
	payperiod.PayPeriodRepository
}

func NewPayPeriodService(periodRepo payperiod.PayPeriodRepository) payperiod.PayPeriodService {
	return &PayPeriodServiceImpl{PayPeriodRepository: periodRepo}
}

// Create implements payperiod.PayPeriodService. Overlap with an existing
// period surfaces as ErrPayPeriodOverlap from the storage layer.
func (s *PayPeriodServiceImpl) Create(ctx context.Context, req payperiod.CreatePayPeriodRequest) (payperiod.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payperiod.PayPeriodResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}

	startDate, err := validator.ParseDate(req.StartDate)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	endDate, err := validator.ParseDate(req.EndDate)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}

	created, err := s.PayPeriodRepository.Create(ctx, payperiod.PayPeriod{
		CompanyID: act.CompanyID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    payperiod.StatusOpen,
	})
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return payperiod.ToResponse(created), nil
}

// Get implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) Get(ctx context.Context, id string) (payperiod.PayPeriodResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}

	period, err := s.PayPeriodRepository.GetByID(ctx, id, act.CompanyID)
	if err != nil {
		return payperiod.PayPeriodResponse{}, err
	}
	return payperiod.ToResponse(period), nil
}

// List implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) List(ctx context.Context) ([]payperiod.PayPeriodResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.PayPeriodRepository.List(ctx, act.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payperiod.PayPeriodResponse, 0, len(periods))
	for _, period := range periods {
		responses = append(responses, payperiod.ToResponse(period))
	}
	return responses, nil
}
