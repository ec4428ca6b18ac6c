package trip

import (
	"errors"
	"fmt"

	"nemt/internal/pkg/errs"
)

// ErrInvalidTransition indicates that a requested lifecycle transition is not
// legal from the entity's current state. It applies to both Trip and Stop
// state machines.
var ErrInvalidTransition = errors.New("invalid transition")

// StopStatus represents the execution lifecycle state of a stop.
// It implements a state machine with defined transitions:
//
//	StopPending ──> StopAssigned ──> StopEnRoute ──> StopArrived ──┬──> StopCompleted
//	                                                               └──> StopNoShow
//	     (StopCanceled is reachable from any non-terminal state)
//
// StopCompleted, StopNoShow, and StopCanceled are terminal; no state may be
// skipped except by cancellation.
type StopStatus int

const (
	// StopUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized StopStatus values.
	StopUnknown StopStatus = iota

	// StopPending means the stop is planned but not yet dispatched to a driver.
	StopPending

	// StopAssigned means the stop is dispatched to a driver who has not yet
	// started traveling towards it.
	StopAssigned

	// StopEnRoute means the driver is traveling to the stop's location.
	StopEnRoute

	// StopArrived means the driver is at the location performing the stop's
	// actions (waiting for the passenger, loading equipment).
	StopArrived

	// StopCompleted means the stop's objective was met. Terminal.
	StopCompleted

	// StopNoShow means the driver arrived but the stop could not be completed,
	// e.g. the passenger was not present. Terminal, billable failure.
	StopNoShow

	// StopCanceled means the stop was canceled before completion. Terminal.
	StopCanceled
)

// getStopStatusStrings returns a map of StopStatus values to their string representations.
func getStopStatusStrings() map[StopStatus]string {
	return map[StopStatus]string{
		StopUnknown:   "Unknown",
		StopPending:   "Pending",
		StopAssigned:  "Assigned",
		StopEnRoute:   "EnRoute",
		StopArrived:   "Arrived",
		StopCompleted: "Completed",
		StopNoShow:    "NoShow",
		StopCanceled:  "Canceled",
	}
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s StopStatus) String() string {
	if str, ok := getStopStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the StopStatus value is one of the defined states.
func (s StopStatus) Validate() error {
	if _, ok := getStopStatusStrings()[s]; !ok || s == StopUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"stop status is invalid",
			fmt.Errorf("%d is not a valid stop status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the status is one of the terminal outcomes.
func (s StopStatus) IsTerminal() bool {
	return s == StopCompleted || s == StopNoShow || s == StopCanceled
}

// Dispatch transitions StopPending to StopAssigned.
func (s StopStatus) Dispatch() (StopStatus, error) {
	if s != StopPending {
		return 0, stopTransitionError(s, StopAssigned)
	}
	return StopAssigned, nil
}

// Depart transitions StopAssigned to StopEnRoute.
func (s StopStatus) Depart() (StopStatus, error) {
	if s != StopAssigned {
		return 0, stopTransitionError(s, StopEnRoute)
	}
	return StopEnRoute, nil
}

// Arrive transitions StopEnRoute to StopArrived.
func (s StopStatus) Arrive() (StopStatus, error) {
	if s != StopEnRoute {
		return 0, stopTransitionError(s, StopArrived)
	}
	return StopArrived, nil
}

// Complete transitions StopArrived to StopCompleted.
func (s StopStatus) Complete() (StopStatus, error) {
	if s != StopArrived {
		return 0, stopTransitionError(s, StopCompleted)
	}
	return StopCompleted, nil
}

// MarkNoShow transitions StopArrived to StopNoShow.
func (s StopStatus) MarkNoShow() (StopStatus, error) {
	if s != StopArrived {
		return 0, stopTransitionError(s, StopNoShow)
	}
	return StopNoShow, nil
}

// Cancel transitions any non-terminal status to StopCanceled.
func (s StopStatus) Cancel() (StopStatus, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, stopTransitionError(s, StopCanceled)
	}
	return StopCanceled, nil
}

// stopTransitionError builds the uniform invalid-transition error for stops.
func stopTransitionError(from, to StopStatus) error {
	return fmt.Errorf("%w: stop cannot move from %s to %s", ErrInvalidTransition, from, to)
}
