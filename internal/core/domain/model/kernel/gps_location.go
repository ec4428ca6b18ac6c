package kernel

import (
	"errors"
	"fmt"

	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0
)

// ErrGpsLocationIsNotConstructed is returned when attempting to use an improperly initialized GpsLocation.
// Locations must be created using the NewGpsLocation constructor to ensure validity.
var ErrGpsLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"GpsLocation must be created via NewGpsLocation constructor")

// GpsLocation represents a geographic coordinate with validated latitude and longitude.
// It is an immutable value object used for driver-service stops that have a fixed
// location (breaks, refueling, maintenance).
//
// Example:
//
//	loc, err := kernel.NewGpsLocation(37.7749, -122.4194)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: GpsLocation(37.774900,-122.419400)
type GpsLocation struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGpsLocation creates a GpsLocation with the specified coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
// Returns an error if either coordinate is outside the valid bounds.
func NewGpsLocation(latitude float64, longitude float64) (GpsLocation, error) {
	loc := GpsLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GpsLocation{}, err
	}

	return loc, nil
}

// Latitude returns the latitude in decimal degrees.
func (l GpsLocation) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l GpsLocation) Longitude() float64 {
	return l.longitude
}

// IsEqual compares two locations by their coordinates.
func (l GpsLocation) IsEqual(other GpsLocation) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

// String returns a readable representation of the coordinates.
func (l GpsLocation) String() string {
	return fmt.Sprintf("GpsLocation(%f,%f)", l.latitude, l.longitude)
}

// Validate ensures the GpsLocation was created through NewGpsLocation.
func (l GpsLocation) Validate() error {
	return l.guard.Validate(ErrGpsLocationIsNotConstructed)
}

// setLatitude validates and sets the latitude.
// This is a private method used only during construction.
func (l *GpsLocation) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

// setLongitude validates and sets the longitude.
// This is a private method used only during construction.
func (l *GpsLocation) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}
