package compensation

import "errors"

var (
	ErrCompensationNotFound         = errors.New("no compensation on file")
	ErrEffectiveFromNotAfterCurrent = errors.New("effective_from must be after the current record's effective_from")
)
