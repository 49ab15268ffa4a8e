package timeevent

import "fmt"

// AttendanceState is derived from the employee's latest event. It is never
// stored; the event log is the source of truth.
type AttendanceState string

const (
	StateClockedOut AttendanceState = "CLOCKED_OUT"
	StateClockedIn  AttendanceState = "CLOCK_IN"
	StateOnBreak    AttendanceState = "BREAK_IN"
	StateOffBreak   AttendanceState = "BREAK_OUT"
)

// validTransitions is the closed attendance state machine: anything not
// listed is rejected.
var validTransitions = map[AttendanceState][]EventType{
	StateClockedOut: {ClockIn},
	StateClockedIn:  {ClockOut, BreakIn},
	StateOnBreak:    {BreakOut},
	StateOffBreak:   {ClockOut, BreakIn},
}

// StateAfter maps an event type to the attendance state it leaves the
// employee in.
func StateAfter(t EventType) AttendanceState {
	if t == ClockOut {
		return StateClockedOut
	}
	return AttendanceState(t)
}

// ValidateTransition checks whether eventType is allowed from current.
func ValidateTransition(current AttendanceState, eventType EventType) error {
	for _, allowed := range validTransitions[current] {
		if allowed == eventType {
			return nil
		}
	}
	return &InvalidTransitionError{Current: current, Attempted: eventType}
}

// InvalidTransitionError reports a rejected attendance transition.
type InvalidTransitionError struct {
	Current   AttendanceState
	Attempted EventType
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot perform %s when current status is %s", e.Attempted, e.Current)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
