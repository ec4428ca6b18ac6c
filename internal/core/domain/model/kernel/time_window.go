package kernel

import (
	"fmt"
	"time"

	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when attempting to use an improperly initialized TimeWindow.
// Time windows must be created using the NewTimeWindow constructor to ensure the bounds are consistent.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"TimeWindow must be created via NewTimeWindow constructor")

// TimeWindow is a value object constraining when a stop may be serviced.
// Either bound may be open (the zero time), but when both bounds are given the
// earliest time must not be after the latest time.
//
// Example:
//
//	window, err := kernel.NewTimeWindow(pickupEarliest, pickupLatest)
//	if err != nil {
//	    // bounds were inverted
//	}
type TimeWindow struct { //nolint:recvcheck //using for validation
	earliest time.Time
	latest   time.Time
	guard    guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow with the given bounds.
// A zero time on either side leaves that bound open. Returns an error when both
// bounds are set and earliest is after latest, or when both bounds are open.
func NewTimeWindow(earliest time.Time, latest time.Time) (TimeWindow, error) {
	if earliest.IsZero() && latest.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("time window bounds")
	}

	if !earliest.IsZero() && !latest.IsZero() && earliest.After(latest) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window",
			fmt.Errorf("earliest %s is after latest %s", earliest.Format(time.RFC3339), latest.Format(time.RFC3339)),
		)
	}

	return TimeWindow{
		earliest: earliest,
		latest:   latest,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Earliest returns the lower bound of the window. A zero time means the bound is open.
func (w TimeWindow) Earliest() time.Time {
	return w.earliest
}

// Latest returns the upper bound of the window. A zero time means the bound is open.
func (w TimeWindow) Latest() time.Time {
	return w.latest
}

// Contains reports whether the given instant falls within the window,
// treating open bounds as unbounded.
func (w TimeWindow) Contains(t time.Time) bool {
	if !w.earliest.IsZero() && t.Before(w.earliest) {
		return false
	}
	if !w.latest.IsZero() && t.After(w.latest) {
		return false
	}
	return true
}

// IsEqual compares two time windows by their bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.earliest.Equal(other.earliest) && w.latest.Equal(other.latest)
}

// Validate ensures the TimeWindow was created through NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}
