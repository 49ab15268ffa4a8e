package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrSettingNotFound = errors.New("company settings not found")
)
