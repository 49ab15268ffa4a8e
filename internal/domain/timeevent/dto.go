package timeevent

import (
	"time"

	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

type RecordEventRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	PIN            *string `json:"pin,omitempty"`
	Type           string  `json:"type"`
	RequestID      string  `json:"request_id"`
	Source         *string `json:"source,omitempty"`
	DeviceID       *string `json:"device_id,omitempty"`
	MetaJSON       *string `json:"meta_json,omitempty"`

	// IPAddress is stamped by the transport layer, never by the client body.
	IPAddress *string `json:"-"`
}

func (r RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsNumeric(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{Field: "employee_number", Message: "must be numeric"})
	}
	if !EventType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be CLOCK_IN, CLOCK_OUT, BREAK_IN or BREAK_OUT"})
	}
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "is required"})
	}
	if len(r.RequestID) > 100 {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "must be at most 100 characters"})
	}
	if r.Source != nil && !Source(*r.Source).Valid() {
		errs = append(errs, validator.ValidationError{Field: "source", Message: "must be KIOSK, WEB or MOBILE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	HappenedAt time.Time `json:"happened_at"`
	Source     string    `json:"source"`
	RequestID  string    `json:"request_id"`
	DeviceID   *string   `json:"device_id,omitempty"`
}

func ToResponse(ev TimeEvent) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Type:       string(ev.Type),
		HappenedAt: ev.HappenedAt,
		Source:     string(ev.Source),
		RequestID:  ev.RequestID,
		DeviceID:   ev.DeviceID,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ServerTimeResponse struct {
	ServerTime time.Time `json:"server_time"`
}
