package constraint

import (
	"errors"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/kernel"
)

// Driver is the slice of a driver record that constraint evaluation needs:
// identity, gender, and the attribute definitions the driver holds.
// The full driver profile lives with the identity collaborator; the core only
// ever sees candidates.
type Driver struct {
	ID           kernel.UUID
	Gender       Gender
	AttributeIDs []string
}

// Validate checks the candidate's identity and gender.
func (d Driver) Validate() error {
	return errors.Join(d.ID.Validate(), d.Gender.Validate())
}

// HasAttribute reports whether the driver holds the given attribute definition.
func (d Driver) HasAttribute(attributeID string) bool {
	for _, held := range d.AttributeIDs {
		if held == attributeID {
			return true
		}
	}
	return false
}

// Vehicle is the slice of a vehicle record that constraint evaluation and
// assignment validation need: identity, type, and the capacity profile
// describing how many of each space type the vehicle offers.
type Vehicle struct {
	ID              kernel.UUID
	Type            VehicleType
	CapacityProfile capacity.Vector
}

// Validate checks the candidate's identity and type.
func (v Vehicle) Validate() error {
	return errors.Join(v.ID.Validate(), v.Type.Validate())
}
