package constraint

import (
	"errors"
	"fmt"

	"nemt/internal/core/domain/model/kernel"
)

// ErrConflictingConstraints indicates that a trip's constraints are internally
// inconsistent: some dimension is simultaneously required and prohibited, so no
// candidate could ever satisfy the set.
var ErrConflictingConstraints = errors.New("conflicting constraints")

// DriverConstraints describes matching rules that apply to a driver.
// All fields are optional; an empty struct matches nothing (as a prohibition)
// and demands nothing (as a requirement).
type DriverConstraints struct {
	// IDs restricts matching to specific driver instances.
	IDs []kernel.UUID

	// Gender, when set, matches drivers of that gender.
	Gender Gender

	// RequiredAttributeIDs lists attribute definition IDs the driver must hold,
	// e.g. a cleared-for-minors attribute. Only meaningful in the requirements tier.
	RequiredAttributeIDs []string
}

// IsEmpty reports whether no driver rule is set.
func (c DriverConstraints) IsEmpty() bool {
	return len(c.IDs) == 0 && c.Gender == "" && len(c.RequiredAttributeIDs) == 0
}

// VehicleConstraints describes matching rules that apply to a vehicle.
// All fields are optional.
type VehicleConstraints struct {
	// IDs restricts matching to specific vehicle instances.
	IDs []kernel.UUID

	// Type, when set, matches vehicles of that type.
	Type VehicleType
}

// IsEmpty reports whether no vehicle rule is set.
func (c VehicleConstraints) IsEmpty() bool {
	return len(c.IDs) == 0 && c.Type == ""
}

// ConstraintSet groups the driver and vehicle rules of a single tier.
type ConstraintSet struct {
	Driver  *DriverConstraints
	Vehicle *VehicleConstraints
}

// IsEmpty reports whether the set carries no rule at all.
func (s ConstraintSet) IsEmpty() bool {
	return (s.Driver == nil || s.Driver.IsEmpty()) && (s.Vehicle == nil || s.Vehicle.IsEmpty())
}

// TripConstraints is the container for all matching rules of a trip,
// categorized by strictness. Prohibitions outrank requirements outrank
// preferences.
type TripConstraints struct {
	// Preferences are soft: try to match these if possible.
	Preferences *ConstraintSet

	// Requirements are hard: the assignment must match these.
	Requirements *ConstraintSet

	// Prohibitions are hard: do not assign if these match.
	Prohibitions *ConstraintSet
}

// Validate checks the container for internal consistency.
// A driver or vehicle ID, a gender, or a vehicle type appearing in both the
// requirements and prohibitions tiers can never be satisfied and fails with
// ErrConflictingConstraints. Preferences cannot conflict; they never block.
func (tc TripConstraints) Validate() error {
	if tc.Requirements == nil || tc.Prohibitions == nil {
		return nil
	}

	req, pro := tc.Requirements, tc.Prohibitions

	if req.Driver != nil && pro.Driver != nil {
		for _, id := range req.Driver.IDs {
			if containsID(pro.Driver.IDs, id) {
				return fmt.Errorf("%w: driver %s is both required and prohibited", ErrConflictingConstraints, id)
			}
		}
		if req.Driver.Gender != "" && req.Driver.Gender == pro.Driver.Gender {
			return fmt.Errorf("%w: gender %s is both required and prohibited", ErrConflictingConstraints, req.Driver.Gender)
		}
	}

	if req.Vehicle != nil && pro.Vehicle != nil {
		for _, id := range req.Vehicle.IDs {
			if containsID(pro.Vehicle.IDs, id) {
				return fmt.Errorf("%w: vehicle %s is both required and prohibited", ErrConflictingConstraints, id)
			}
		}
		if req.Vehicle.Type != "" && req.Vehicle.Type == pro.Vehicle.Type {
			return fmt.Errorf("%w: vehicle type %s is both required and prohibited", ErrConflictingConstraints, req.Vehicle.Type)
		}
	}

	return nil
}

// containsID reports whether the slice contains the given UUID.
func containsID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, candidate := range ids {
		if candidate.IsEqual(id) {
			return true
		}
	}
	return false
}
