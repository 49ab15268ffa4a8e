package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeInactive       = errors.New("employee account is inactive")
	ErrEmployeeNumberTaken    = errors.New("employee number already in use")
	ErrNoPINConfigured        = errors.New("employee has no PIN set")
	ErrUnauthorizedCompany    = errors.New("employee belongs to another company")
	ErrEmployeeAlreadyRemoved = errors.New("employee has already been removed")
)
