package trip

import (
	"fmt"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

// PickupType defines whether a pickup happens at a fixed time or is initiated
// by the passenger calling in.
type PickupType string

const (
	// PickupScheduled means the pickup is planned at a fixed time.
	PickupScheduled PickupType = "Scheduled"

	// PickupWillCall means the passenger triggers the pickup when ready,
	// for example after an appointment of unknown length.
	PickupWillCall PickupType = "WillCall"
)

// Validate checks if the PickupType value is one of the defined types.
func (t PickupType) Validate() error {
	switch t {
	case PickupScheduled, PickupWillCall:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"pickup type is invalid",
		fmt.Errorf("%q is not a valid pickup type", string(t)),
	)
}

// PostTripDirective instructs the scheduler and driver what to do immediately
// after the trip completes. The only directive today is wait-and-return: the
// crew waits on site for the stated duration and then serves the next trip.
//
// The directive is denormalized from the parent journey so the trip stays
// self-describing for dispatch.
type PostTripDirective struct {
	// Duration is the expected on-site wait.
	Duration time.Duration

	// NextTripID identifies the trip the crew waits for.
	NextTripID kernel.UUID
}

// NewPostTripDirective creates a wait-and-return directive.
//
// Returns an error if duration is not positive or nextTripID is empty.
func NewPostTripDirective(duration time.Duration, nextTripID kernel.UUID) (PostTripDirective, error) {
	if duration <= 0 {
		return PostTripDirective{}, errs.NewValueIsInvalidErrorWithCause(
			"duration", fmt.Errorf("wait duration must be positive, got %s", duration))
	}
	if err := nextTripID.Validate(); err != nil {
		return PostTripDirective{}, errs.NewValueIsRequiredErrorWithCause("nextTripID", err)
	}
	return PostTripDirective{Duration: duration, NextTripID: nextTripID}, nil
}
