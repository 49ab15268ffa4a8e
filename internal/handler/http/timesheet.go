package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Rebuild(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	AddAdjustment(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// Generate implements TimesheetHandler.
func (h *timesheetHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req timesheet.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.timesheetService.GenerateForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheets generated", resp)
}

// Get implements TimesheetHandler.
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.timesheetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements TimesheetHandler.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.timesheetService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Rebuild implements TimesheetHandler.
func (h *timesheetHandlerImpl) Rebuild(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.timesheetService.RebuildDays(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rebuilt", resp)
}

// Review implements TimesheetHandler.
func (h *timesheetHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.timesheetService.Review(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet reviewed", resp)
}

// Approve implements TimesheetHandler.
func (h *timesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.timesheetService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", resp)
}

// Lock implements TimesheetHandler.
func (h *timesheetHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.timesheetService.Lock(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet locked", resp)
}

// AddAdjustment implements TimesheetHandler.
func (h *timesheetHandlerImpl) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	workDate := chi.URLParam(r, "workDate")

	var req timesheet.AddAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.timesheetService.AddAdjustment(r.Context(), id, workDate, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment recorded", resp)
}
