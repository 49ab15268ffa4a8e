package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound       = errors.New("timesheet not found")
	ErrDayNotFound             = errors.New("timesheet day not found")
	ErrInvalidStatusTransition = errors.New("invalid timesheet status transition")
	ErrTimesheetNotEditable    = errors.New("timesheet can no longer be modified")
	ErrTimesheetExists         = errors.New("timesheet already exists for this pay period")
)
