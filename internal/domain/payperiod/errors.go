package payperiod

import "errors"

var (
	ErrPayPeriodNotFound = errors.New("pay period not found")
	ErrPayPeriodOverlap  = errors.New("pay period overlaps an existing period")
	ErrPayPeriodClosed   = errors.New("pay period is closed")
)
