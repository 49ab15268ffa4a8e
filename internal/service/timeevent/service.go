package timeevent

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftclock/timeclock-backend-go/internal/repository/postgresql"
)

var runInTransaction = postgresql.WithTransaction

type TimeEventServiceImpl struct {
	db *database.DB
	timeevent.TimeEventRepository
	employee.EmployeeRepository
}

func NewTimeEventService(
	db *database.DB,
	eventRepo timeevent.TimeEventRepository,
	employeeRepo employee.EmployeeRepository,
) timeevent.TimeEventService {
	return &TimeEventServiceImpl{
		db:                  db,
		TimeEventRepository: eventRepo,
		EmployeeRepository:  employeeRepo,
	}
}

// Record implements timeevent.TimeEventService. The check-then-insert runs
// inside a transaction holding a row lock on the employee, so two concurrent
// events for the same employee cannot both validate against a stale state.
func (s *TimeEventServiceImpl) Record(ctx context.Context, req timeevent.RecordEventRequest) (timeevent.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timeevent.EventResponse{}, err
	}

	number, err := strconv.Atoi(req.EmployeeNumber)
	if err != nil {
		return timeevent.EventResponse{}, fmt.Errorf("invalid employee number %q: %w", req.EmployeeNumber, err)
	}

	emp, err := s.EmployeeRepository.GetByNumber(ctx, number)
	if err != nil {
		return timeevent.EventResponse{}, err
	}
	if !emp.IsActive {
		return timeevent.EventResponse{}, employee.ErrEmployeeInactive
	}

	if req.PIN != nil {
		if emp.PinHash == nil {
			return timeevent.EventResponse{}, employee.ErrNoPINConfigured
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*emp.PinHash), []byte(*req.PIN)); err != nil {
			return timeevent.EventResponse{}, timeevent.ErrInvalidPIN
		}
	}

	source := timeevent.SourceWeb
	if req.Source != nil {
		source = timeevent.Source(*req.Source)
	}

	var recorded timeevent.TimeEvent
	err = runInTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.EmployeeRepository.LockForUpdate(txCtx, emp.ID); err != nil {
			return err
		}

		// Idempotency before transition validation: a retried request must
		// never fail differently from its original.
		existing, err := s.TimeEventRepository.GetByRequestID(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if existing != nil {
			recorded = *existing
			return nil
		}

		state, err := s.currentState(txCtx, emp.ID)
		if err != nil {
			return err
		}
		if err := timeevent.ValidateTransition(state, timeevent.EventType(req.Type)); err != nil {
			return err
		}

		// Server-authoritative timestamp; clients only supply metadata.
		event := timeevent.TimeEvent{
			EmployeeID: emp.ID,
			Type:       timeevent.EventType(req.Type),
			HappenedAt: time.Now().UTC(),
			Source:     source,
			RequestID:  req.RequestID,
			DeviceID:   req.DeviceID,
			IPAddress:  req.IPAddress,
			MetaJSON:   req.MetaJSON,
		}

		recorded, err = s.TimeEventRepository.Create(txCtx, event)
		return err
	})
	if err != nil {
		// Lost the request_id race to a concurrent retry: the winner's row
		// is the answer.
		if errors.Is(err, timeevent.ErrDuplicateRequestID) {
			winner, lookupErr := s.TimeEventRepository.GetByRequestID(ctx, req.RequestID)
			if lookupErr == nil && winner != nil {
				return timeevent.ToResponse(*winner), nil
			}
		}
		return timeevent.EventResponse{}, err
	}

	return timeevent.ToResponse(recorded), nil
}

func (s *TimeEventServiceImpl) currentState(ctx context.Context, employeeID string) (timeevent.AttendanceState, error) {
	latest, err := s.TimeEventRepository.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return timeevent.StateClockedOut, nil
	}
	return timeevent.StateAfter(latest.Type), nil
}

// GetStatus implements timeevent.TimeEventService.
func (s *TimeEventServiceImpl) GetStatus(ctx context.Context, employeeNumber string) (timeevent.StatusResponse, error) {
	emp, err := s.resolveByNumber(ctx, employeeNumber)
	if err != nil {
		return timeevent.StatusResponse{}, err
	}

	state, err := s.currentState(ctx, emp.ID)
	if err != nil {
		return timeevent.StatusResponse{}, err
	}

	return timeevent.StatusResponse{Status: string(state)}, nil
}

// GetRecentEvents implements timeevent.TimeEventService.
func (s *TimeEventServiceImpl) GetRecentEvents(ctx context.Context, employeeNumber string, limit int) ([]timeevent.EventResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	emp, err := s.resolveByNumber(ctx, employeeNumber)
	if err != nil {
		return nil, err
	}

	events, err := s.TimeEventRepository.ListRecentByEmployee(ctx, emp.ID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]timeevent.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, timeevent.ToResponse(ev))
	}

	return responses, nil
}

// ServerTime implements timeevent.TimeEventService. Kiosks sync their clock
// display from this instead of trusting the device clock.
func (s *TimeEventServiceImpl) ServerTime() timeevent.ServerTimeResponse {
	return timeevent.ServerTimeResponse{ServerTime: time.Now().UTC()}
}

func (s *TimeEventServiceImpl) resolveByNumber(ctx context.Context, employeeNumber string) (employee.Employee, error) {
	number, err := strconv.Atoi(employeeNumber)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("invalid employee number %q: %w", employeeNumber, err)
	}
	return s.EmployeeRepository.GetByNumber(ctx, number)
}
