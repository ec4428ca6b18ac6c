package constraint

import (
	"fmt"

	"nemt/internal/pkg/errs"
)

// Gender is the gender of a driver, used for matching constraints
// (e.g. a female driver required for a specific passenger).
type Gender string

const (
	Female    Gender = "female"
	Male      Gender = "male"
	NonBinary Gender = "non-binary"
)

// Validate checks that the gender is one of the supported values.
func (g Gender) Validate() error {
	switch g {
	case Female, Male, NonBinary:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"gender",
			fmt.Errorf("%q is not a valid gender", string(g)),
		)
	}
}

// VehicleType categorizes a vehicle in the fleet for matching purposes.
type VehicleType string

const (
	Sedan         VehicleType = "sedan"
	Van           VehicleType = "van"
	WheelchairVan VehicleType = "wheelchair_van"
	SUV           VehicleType = "suv"
)

// Validate checks that the vehicle type is one of the supported values.
func (t VehicleType) Validate() error {
	switch t {
	case Sedan, Van, WheelchairVan, SUV:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle type",
			fmt.Errorf("%q is not a valid vehicle type", string(t)),
		)
	}
}
