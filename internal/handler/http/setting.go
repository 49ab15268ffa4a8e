package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

type SettingHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService company.SettingService
}

func NewSettingHandler(settingService company.SettingService) SettingHandler {
	return &settingHandlerImpl{
		settingService: settingService,
	}
}

// Get implements SettingHandler.
func (h *settingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.settingService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Update implements SettingHandler.
func (h *settingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.settingService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", resp)
}
