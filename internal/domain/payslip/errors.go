package payslip

import "errors"

// Payslip domain errors
var (
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipExists           = errors.New("payslip already exists for this pay period")
	ErrInvalidStatusTransition = errors.New("invalid payslip status transition")
	ErrTimesheetNotApproved    = errors.New("timesheet must be approved before payslip generation")
	ErrNoCompensationOnFile    = errors.New("employee has no compensation record on file")
)
