package timesheet

import "fmt"

// Status is the timesheet lifecycle. The progression is strictly forward;
// there is no way back from LOCKED.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusReviewed Status = "REVIEWED"
	StatusApproved Status = "APPROVED"
	StatusLocked   Status = "LOCKED"
)

var nextStatus = map[Status][]Status{
	StatusDraft:    {StatusReviewed},
	StatusReviewed: {StatusApproved},
	StatusApproved: {StatusLocked},
	StatusLocked:   {},
}

// ValidateStatusTransition rejects anything that is not the single forward
// step from the current status, including skips.
func ValidateStatusTransition(from, to Status) error {
	for _, allowed := range nextStatus[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
}

// AtLeastApproved reports whether a timesheet has passed approval, the gate
// for payslip generation.
func (s Status) AtLeastApproved() bool {
	return s == StatusApproved || s == StatusLocked
}

// Editable reports whether day rows may still be rebuilt or adjusted.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusReviewed
}
