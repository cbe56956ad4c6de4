package checkout

type State string

const (
	StateIdle       State = "idle"
	StateReviewing  State = "reviewing"
	StateSubmitting State = "submitting"
	StateSettled    State = "settled"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateIdle, StateReviewing, StateSubmitting, StateSettled, StateFailed:
		return true
	default:
		return false
	}
}

// IsLocked is true while a sale request is in flight.
func (s State) IsLocked() bool {
	return s == StateSubmitting
}

// Settled and Failed are passed through, never rested in.
func (s State) IsTransient() bool {
	return s == StateSettled || s == StateFailed
}

type Transition struct {
	From State
	To   State
}
