package compensation

import (
	"context"
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/actor"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
)

var runInTransaction = postgresql.WithTransaction

type CompensationServiceImpl struct {
	db *database.DB
	compensation.CompensationRepository
	employee.EmployeeRepository
}

func NewCompensationService(
	db *database.DB,
	compRepo compensation.CompensationRepository,
	employeeRepo employee.EmployeeRepository,
) compensation.CompensationService {
	return &CompensationServiceImpl{
		db:                     db,
		CompensationRepository: compRepo,
		EmployeeRepository:     employeeRepo,
	}
}

// Add implements compensation.CompensationService. Closing the open record
// and inserting the new one happen in one transaction so the history never
// shows two open-ended records.
func (s *CompensationServiceImpl) Add(ctx context.Context, employeeID string, req compensation.CreateCompensationRequest) (compensation.CompensationResponse, error) {
	if err := req.Validate(); err != nil {
		return compensation.CompensationResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, act.CompanyID); err != nil {
		return compensation.CompensationResponse{}, err
	}

	effectiveFrom, err := timeutil.ParseDate(req.EffectiveFrom)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	rec := compensation.Record{
		EmployeeID:      employeeID,
		Type:            compensation.Type(req.Type),
		HourlyRate:      req.HourlyRate,
		DailyRate:       req.DailyRate,
		MonthlySalary:   req.MonthlySalary,
		EffectiveFrom:   effectiveFrom,
		CreatedByUserID: &act.UserID,
	}

	var created compensation.Record
	err = runInTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.EmployeeRepository.LockForUpdate(txCtx, employeeID); err != nil {
			return err
		}

		open, err := s.CompensationRepository.GetOpenEnded(txCtx, employeeID)
		if err != nil {
			return err
		}
		if open != nil {
			if !effectiveFrom.After(open.EffectiveFrom) {
				return compensation.ErrEffectiveFromNotAfterCurrent
			}
			// Close out the day before the new record takes effect.
			if err := s.CompensationRepository.CloseRecord(txCtx, open.ID, effectiveFrom.AddDate(0, 0, -1)); err != nil {
				return err
			}
		}

		created, err = s.CompensationRepository.Create(txCtx, rec)
		return err
	})
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	return compensation.ToResponse(created), nil
}

// GetCurrent implements compensation.CompensationService. "Current" is the
// record with the highest effective_from, regardless of asOf; asOf is kept
// on the interface for callers that later want true as-of resolution.
func (s *CompensationServiceImpl) GetCurrent(ctx context.Context, employeeID string, _ time.Time) (compensation.CompensationResponse, error) {
	if err := s.checkEmployee(ctx, employeeID); err != nil {
		return compensation.CompensationResponse{}, err
	}

	rec, err := s.CompensationRepository.GetLatest(ctx, employeeID)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	return compensation.ToResponse(rec), nil
}

// GetHistory implements compensation.CompensationService.
func (s *CompensationServiceImpl) GetHistory(ctx context.Context, employeeID string) ([]compensation.CompensationResponse, error) {
	if err := s.checkEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.CompensationRepository.ListHistory(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]compensation.CompensationResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, compensation.ToResponse(rec))
	}

	return responses, nil
}

func (s *CompensationServiceImpl) checkEmployee(ctx context.Context, employeeID string) error {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return err
	}
	_, err = s.EmployeeRepository.GetByID(ctx, employeeID, act.CompanyID)
	return err
}
