package booking

import "fmt"

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	StatusUnconfirmed Status = "unconfirmed"
	StatusCheckedIn   Status = "checked-in"
	StatusCheckedOut  Status = "checked-out"
)

// validTransitions defines the forward-only state machine for booking
// status transitions. A stay is checked in on arrival and checked out on
// departure; no state may be skipped and checked-out is terminal.
var validTransitions = map[Status][]Status{
	StatusUnconfirmed: {StatusCheckedIn},
	StatusCheckedIn:   {StatusCheckedOut},
	StatusCheckedOut:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
