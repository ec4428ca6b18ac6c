package services

import (
	"errors"
	"fmt"
	"strings"

	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/trip"
)

var (
	// ErrConstraintsViolated is returned when the candidate pair matches a
	// prohibition or misses a requirement of the trip's constraints.
	ErrConstraintsViolated = errors.New("assignment violates trip constraints")

	// ErrVehicleCapacityExceeded is returned when the trip's capacity
	// requirements do not fit the vehicle's capacity profile.
	ErrVehicleCapacityExceeded = errors.New("trip does not fit vehicle capacity profile")
)

// AssignmentValidator checks an optimizer-proposed driver and vehicle pair
// against a trip before the trip is scheduled onto them.
//
// The optimizer is trusted to score, not to enforce: every assignment is
// re-validated here against the trip's constraints and the vehicle's
// capacity profile.
type AssignmentValidator struct{}

// NewAssignmentValidator creates a new AssignmentValidator instance.
func NewAssignmentValidator() AssignmentValidator {
	return AssignmentValidator{}
}

// ValidateAssignment checks the candidate pair against the trip.
//
// Returns:
//   - ErrConstraintsViolated (with the hard violations listed) when the
//     trip's constraints block the pair
//   - ErrVehicleCapacityExceeded when the trip's capacity requirements do
//     not fit the vehicle
//   - nil when the pair may serve the trip
//
// Missed preferences never block an assignment.
func (v AssignmentValidator) ValidateAssignment(
	t *trip.Trip,
	driver constraint.Driver,
	vehicle constraint.Vehicle,
) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if constraints := t.Constraints(); constraints != nil {
		evaluation, err := constraint.Evaluate(*constraints, driver, vehicle)
		if err != nil {
			return err
		}
		if evaluation.IsBlocked() {
			return fmt.Errorf("%w: %s", ErrConstraintsViolated, describeViolations(evaluation.Violations))
		}
	} else {
		if err := errors.Join(driver.Validate(), vehicle.Validate()); err != nil {
			return err
		}
	}

	if !t.CapacityRequirements().Fits(vehicle.CapacityProfile) {
		return fmt.Errorf("%w: trip %s, vehicle %s", ErrVehicleCapacityExceeded, t.ID(), vehicle.ID)
	}
	return nil
}

// describeViolations lists the hard violations for the error message.
func describeViolations(violations []constraint.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, violation := range violations {
		if violation.Kind == constraint.PreferenceMissed {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%s): %s", violation.Kind, violation.Rule, violation.Detail))
	}
	return strings.Join(parts, "; ")
}
