package state

// State is the phase of a round
type State int

const (
	// StateInitial is a round that is still dropping in
	StateInitial State = iota
	// StateDone is a settled round that accepts a hit
	StateDone
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}
