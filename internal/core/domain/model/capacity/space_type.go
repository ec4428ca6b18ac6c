package capacity

import "nemt/internal/pkg/errs"

// SpaceType is the programmatic key of a kind of space inside a vehicle.
// The well-known keys below cover the standard fleet configurations; tenants
// may introduce additional keys without code changes, so any non-empty key is
// accepted.
type SpaceType string

const (
	// Wheelchair is a secured wheelchair position.
	Wheelchair SpaceType = "whc"

	// Ambulatory is a regular seat for a walking passenger.
	Ambulatory SpaceType = "amb"

	// Stretcher is a stretcher bay.
	Stretcher SpaceType = "str"
)

// getSpaceTypeNames returns the display names of the well-known space types.
func getSpaceTypeNames() map[SpaceType]string {
	return map[SpaceType]string{
		Wheelchair: "Wheelchair",
		Ambulatory: "Ambulatory",
		Stretcher:  "Stretcher",
	}
}

// Name returns the display name of a well-known space type,
// or the raw key for tenant-defined types.
func (s SpaceType) Name() string {
	if name, ok := getSpaceTypeNames()[s]; ok {
		return name
	}
	return string(s)
}

// Validate checks that the space type key is not empty.
func (s SpaceType) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("space type key")
	}
	return nil
}
