package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/timeutil"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	SetPIN(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	AddCompensation(w http.ResponseWriter, r *http.Request)
	GetCurrentCompensation(w http.ResponseWriter, r *http.Request)
	GetCompensationHistory(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService     employee.EmployeeService
	compensationService compensation.CompensationService
}

func NewEmployeeHandler(
	employeeService employee.EmployeeService,
	compensationService compensation.CompensationService,
) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService:     employeeService,
		compensationService: compensationService,
	}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", resp)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SetPIN implements EmployeeHandler.
func (h *employeeHandlerImpl) SetPIN(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req employee.SetPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.SetPIN(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "PIN updated", nil)
}

// Deactivate implements EmployeeHandler.
func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}

// AddCompensation implements EmployeeHandler.
func (h *employeeHandlerImpl) AddCompensation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req compensation.CreateCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.compensationService.Add(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation record added", resp)
}

// GetCurrentCompensation implements EmployeeHandler.
func (h *employeeHandlerImpl) GetCurrentCompensation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := timeutil.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "as_of must be a date in YYYY-MM-DD format", nil)
			return
		}
		asOf = parsed
	}

	resp, err := h.compensationService.GetCurrent(r.Context(), id, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetCompensationHistory implements EmployeeHandler.
func (h *employeeHandlerImpl) GetCompensationHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.compensationService.GetHistory(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
