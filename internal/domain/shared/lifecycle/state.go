// Package lifecycle holds the soft-delete state shared by every aggregate.
package lifecycle

// State is the lifecycle state of a record. Rows are never hard-deleted.
type State string

const (
	StateActive   State = "active"
	StateArchived State = "archived"
	StateDeleted  State = "deleted"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsActive() bool {
	return s == StateActive
}

// CanTransitionTo reports whether s may move to target. Moves are one-directional:
// active to archived or deleted, archived to deleted.
func (s State) CanTransitionTo(target State) bool {
	transitions := map[State][]State{
		StateActive:   {StateArchived, StateDeleted},
		StateArchived: {StateDeleted},
		StateDeleted:  {},
	}

	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

var ValidStates = map[State]bool{
	StateActive:   true,
	StateArchived: true,
	StateDeleted:  true,
}
