package response

import (
	"errors"
	"net/http"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/company"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/compensation"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/payslip"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timeevent"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/timesheet"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/user"
	"github.com/shiftclock/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNumberTaken):
		Conflict(w, "Employee number already in use")
	case errors.Is(err, employee.ErrEmployeeInactive):
		UnprocessableEntity(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrNoPINConfigured):
		UnprocessableEntity(w, "Employee has no PIN set")

	// Clock events
	case errors.Is(err, timeevent.ErrInvalidPIN):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, timeevent.ErrInvalidTransition):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, timeevent.ErrDuplicateRequestID):
		Conflict(w, "Request already processed")
	case errors.Is(err, timeevent.ErrEventNotFound):
		NotFound(w, "Time event not found")

	// Compensation
	case errors.Is(err, compensation.ErrCompensationNotFound):
		NotFound(w, "No compensation on file")
	case errors.Is(err, compensation.ErrEffectiveFromNotAfterCurrent):
		UnprocessableEntity(w, err.Error())

	// Pay periods
	case errors.Is(err, payperiod.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrPayPeriodOverlap):
		Conflict(w, "Pay period overlaps an existing period")
	case errors.Is(err, payperiod.ErrPayPeriodClosed):
		UnprocessableEntity(w, "Pay period is closed")

	// Timesheets
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrDayNotFound):
		NotFound(w, "Timesheet day not found")
	case errors.Is(err, timesheet.ErrTimesheetExists):
		Conflict(w, "Timesheet already exists for this pay period")
	case errors.Is(err, timesheet.ErrInvalidStatusTransition):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, timesheet.ErrTimesheetNotEditable):
		UnprocessableEntity(w, "Timesheet can no longer be modified")

	// Payslips
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipExists):
		Conflict(w, "Payslip already exists for this pay period")
	case errors.Is(err, payslip.ErrInvalidStatusTransition):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, payslip.ErrTimesheetNotApproved):
		UnprocessableEntity(w, "Timesheet must be approved before payslip generation")
	case errors.Is(err, payslip.ErrNoCompensationOnFile):
		UnprocessableEntity(w, "Employee has no compensation record on file")

	// Company settings
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrSettingNotFound):
		NotFound(w, "Company settings not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
