package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

type TimeEventHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetRecent(w http.ResponseWriter, r *http.Request)
	ServerTime(w http.ResponseWriter, r *http.Request)
}

type timeEventHandlerImpl struct {
	timeEventService timeevent.TimeEventService
}

func NewTimeEventHandler(timeEventService timeevent.TimeEventService) TimeEventHandler {
	return &timeEventHandlerImpl{
		timeEventService: timeEventService,
	}
}

// Record implements TimeEventHandler. This endpoint is public so kiosks can
// post without a session; the PIN check happens in the service.
func (h *timeEventHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req timeevent.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if ip := clientIP(r); ip != "" {
		req.IPAddress = &ip
	}

	resp, err := h.timeEventService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event recorded", resp)
}

// GetStatus implements TimeEventHandler.
func (h *timeEventHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")

	resp, err := h.timeEventService.GetStatus(r.Context(), employeeNumber)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetRecent implements TimeEventHandler.
func (h *timeEventHandlerImpl) GetRecent(w http.ResponseWriter, r *http.Request) {
	employeeNumber := chi.URLParam(r, "employeeNumber")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	resp, err := h.timeEventService.GetRecentEvents(r.Context(), employeeNumber, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ServerTime implements TimeEventHandler.
func (h *timeEventHandlerImpl) ServerTime(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.timeEventService.ServerTime())
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
