package journey

import (
	"fmt"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

// TransitionKind identifies what happens between a leg and its successor.
type TransitionKind string

const (
	// WaitAndReturn means the crew waits on site and serves the next leg.
	WaitAndReturn TransitionKind = "WaitAndReturn"
)

// Validate checks if the TransitionKind value is one of the defined kinds.
func (k TransitionKind) Validate() error {
	if k != WaitAndReturn {
		return errs.NewValueIsInvalidErrorWithCause(
			"transition kind is invalid",
			fmt.Errorf("%q is not a valid transition kind", string(k)),
		)
	}
	return nil
}

// LegTransition instructs the crew what to do in the gap between this leg and
// the next one.
type LegTransition struct {
	// Kind is the type of transition.
	Kind TransitionKind

	// Duration is the expected length of the gap, e.g. the on-site wait.
	Duration time.Duration
}

// NewLegTransition creates a wait-and-return transition directive.
func NewLegTransition(kind TransitionKind, duration time.Duration) (LegTransition, error) {
	if err := kind.Validate(); err != nil {
		return LegTransition{}, err
	}
	if duration <= 0 {
		return LegTransition{}, errs.NewValueIsInvalidErrorWithCause(
			"duration", fmt.Errorf("transition duration must be positive, got %s", duration))
	}
	return LegTransition{Kind: kind, Duration: duration}, nil
}

// Leg is one segment of a journey. It references the trip that serves it and
// optionally carries a transition directive toward the next leg.
type Leg struct {
	// tripID references the trip that executes this leg
	tripID kernel.UUID

	// transitionToNext is the directive for the gap before the next leg
	transitionToNext *LegTransition
}

// NewLeg creates a leg referencing the given trip. transition may be nil when
// the leg is followed by an ordinary gap or is the last of its journey.
func NewLeg(tripID kernel.UUID, transition *LegTransition) (Leg, error) {
	if err := tripID.Validate(); err != nil {
		return Leg{}, errs.NewValueIsRequiredErrorWithCause("tripID", err)
	}
	if transition != nil {
		if err := transition.Kind.Validate(); err != nil {
			return Leg{}, err
		}
	}
	return Leg{tripID: tripID, transitionToNext: transition}, nil
}

// Trip returns the ID of the trip serving this leg.
func (l Leg) Trip() kernel.UUID {
	return l.tripID
}

// TransitionToNext returns the directive for the gap before the next leg, or
// nil when there is none.
func (l Leg) TransitionToNext() *LegTransition {
	return l.transitionToNext
}
