package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

type PayslipHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{
		payslipService: payslipService,
	}
}

// Generate implements PayslipHandler.
func (h *payslipHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payslip.GeneratePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payslipService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", resp)
}

// Get implements PayslipHandler.
func (h *payslipHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payslipService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements PayslipHandler.
func (h *payslipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payslipService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Finalize implements PayslipHandler.
func (h *payslipHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payslipService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip finalized", resp)
}

// Void implements PayslipHandler.
func (h *payslipHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payslipService.Void(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip voided", resp)
}
