package standingorder

import (
	"errors"
	"fmt"

	"nemt/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a standing order status transition is
// not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid transition")

// Status represents the lifecycle state of a standing order.
//
//	Active ⇄ Paused
//	Active → Ended, Paused → Ended
//
// Ended is terminal. Only Active orders generate journeys.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active means the order generates journeys on its recurrence schedule.
	Active

	// Paused means generation is suspended but the order can resume.
	Paused

	// Ended means the order is permanently closed. Terminal.
	Ended
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Active:  "Active",
		Paused:  "Paused",
		Ended:   "Ended",
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"standing order status is invalid",
			fmt.Errorf("%d is not a valid standing order status", s),
		)
	}
	return nil
}

// Pause transitions Active to Paused.
func (s Status) Pause() (Status, error) {
	if s != Active {
		return 0, orderTransitionError(s, Paused)
	}
	return Paused, nil
}

// Resume transitions Paused back to Active.
func (s Status) Resume() (Status, error) {
	if s != Paused {
		return 0, orderTransitionError(s, Active)
	}
	return Active, nil
}

// End transitions Active or Paused to Ended.
func (s Status) End() (Status, error) {
	if s != Active && s != Paused {
		return 0, orderTransitionError(s, Ended)
	}
	return Ended, nil
}

// orderTransitionError builds the uniform invalid-transition error.
func orderTransitionError(from, to Status) error {
	return fmt.Errorf("%w: standing order cannot move from %s to %s", ErrInvalidTransition, from, to)
}
