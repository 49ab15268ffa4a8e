package timeevent

import "time"

// TimeEvent is an immutable clock fact. Rows are only ever inserted;
// corrections happen through timesheet adjustments, never by editing events.
type TimeEvent struct {
	ID              string
	EmployeeID      string
	Type            EventType
	HappenedAt      time.Time
	Source          Source
	RequestID       string
	DeviceID        *string
	IPAddress       *string
	CreatedByUserID *string
	MetaJSON        *string
	CreatedAt       time.Time
}

type EventType string

const (
	ClockIn  EventType = "CLOCK_IN"
	ClockOut EventType = "CLOCK_OUT"
	BreakIn  EventType = "BREAK_IN"
	BreakOut EventType = "BREAK_OUT"
)

func (t EventType) Valid() bool {
	switch t {
	case ClockIn, ClockOut, BreakIn, BreakOut:
		return true
	}
	return false
}

type Source string

const (
	SourceKiosk  Source = "KIOSK"
	SourceWeb    Source = "WEB"
	SourceMobile Source = "MOBILE"
)

func (s Source) Valid() bool {
	switch s {
	case SourceKiosk, SourceWeb, SourceMobile:
		return true
	}
	return false
}
