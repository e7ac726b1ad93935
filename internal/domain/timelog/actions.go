package timelog

// Action is a clock action the kiosk can dispatch on behalf of the
// employee.
type Action string

const (
	ActionClockIn    Action = "CLOCK_IN"
	ActionClockOut   Action = "CLOCK_OUT"
	ActionStartBreak Action = "START_BREAK"
	ActionEndBreak   Action = "END_BREAK"
)

// AllowedActions returns the actions the kiosk offers for a given
// status. This is UI-side guidance only; the server remains the final
// arbiter and may still reject an action the table permits.
func AllowedActions(s Status) []Action {
	switch s {
	case StatusClockedOut:
		return []Action{ActionClockIn}
	case StatusClockedIn:
		return []Action{ActionClockOut, ActionStartBreak}
	case StatusOnBreak:
		return []Action{ActionClockOut, ActionEndBreak}
	}
	return nil
}

// Allows reports whether the action is offered in the given status.
func (s Status) Allows(a Action) bool {
	for _, allowed := range AllowedActions(s) {
		if allowed == a {
			return true
		}
	}
	return false
}

// RequiresPhoto reports whether the action must carry a confirmed
// verification photo.
func (a Action) RequiresPhoto() bool {
	return a == ActionClockIn || a == ActionClockOut
}
