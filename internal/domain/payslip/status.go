package payslip

import "fmt"

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusFinalized Status = "FINALIZED"
	StatusVoid      Status = "VOID"
)

// A draft can only be finalized; a finalized payslip can only be voided.
// Drafts are regenerated rather than voided.
var nextStatus = map[Status][]Status{
	StatusDraft:     {StatusFinalized},
	StatusFinalized: {StatusVoid},
	StatusVoid:      {},
}

func ValidateStatusTransition(from, to Status) error {
	for _, allowed := range nextStatus[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
}
