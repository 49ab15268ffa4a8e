package timeevent

import "errors"

// Time event domain errors
var (
	ErrInvalidTransition = errors.New("invalid attendance transition")
	ErrInvalidPIN        = errors.New("invalid PIN")

	// ErrDuplicateRequestID signals a lost race on the request_id unique
	// index. The recorder resolves it by returning the winning row, so it
	// never surfaces to callers.
	ErrDuplicateRequestID = errors.New("time event with this request id already exists")

	ErrEventNotFound = errors.New("time event not found")
)
