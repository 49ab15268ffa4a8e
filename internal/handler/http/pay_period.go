package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

type PayPeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payPeriodService payperiod.PayPeriodService
}

func NewPayPeriodHandler(payPeriodService payperiod.PayPeriodService) PayPeriodHandler {
	return &payPeriodHandlerImpl{
		payPeriodService: payPeriodService,
	}
}

// Create implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payperiod.CreatePayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payPeriodService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", resp)
}

// Get implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.payPeriodService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payPeriodService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
