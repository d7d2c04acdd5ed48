// Package game drives the simulation on a fixed tick and exposes the
// commands hosts may issue.
package game

// State represents whether the simulation is advancing.
type State int

const (
	// StateRunning advances the simulation on every due tick.
	StateRunning State = iota
	// StatePaused ignores ticks and move commands. A finished game is paused.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
