package trip

import (
	"fmt"

	"nemt/internal/pkg/errs"
)

// StopOutcome records how a stop actually concluded, independently of the
// StopStatus it ended in. A stop can finish Completed yet carry a variance
// outcome, which downstream billing and reporting care about.
type StopOutcome int

const (
	// OutcomeUnknown represents an invalid or undefined outcome.
	OutcomeUnknown StopOutcome = iota

	// OutcomeCompletedAsPlanned means service happened as scheduled.
	OutcomeCompletedAsPlanned

	// OutcomeCompletedWithVariance means service happened but deviated from
	// plan, for example a late arrival or an address correction on the door.
	OutcomeCompletedWithVariance

	// OutcomePassengerNoShow means the passenger was not present at the stop.
	OutcomePassengerNoShow

	// OutcomeCanceledAtDoor means the passenger refused service on arrival.
	OutcomeCanceledAtDoor

	// OutcomeVehicleBrokeDown means a vehicle failure prevented service.
	OutcomeVehicleBrokeDown
)

// getStopOutcomeStrings returns a map of StopOutcome values to their string representations.
func getStopOutcomeStrings() map[StopOutcome]string {
	return map[StopOutcome]string{
		OutcomeUnknown:               "Unknown",
		OutcomeCompletedAsPlanned:    "CompletedAsPlanned",
		OutcomeCompletedWithVariance: "CompletedWithVariance",
		OutcomePassengerNoShow:       "PassengerNoShow",
		OutcomeCanceledAtDoor:        "CanceledAtDoor",
		OutcomeVehicleBrokeDown:      "VehicleBrokeDown",
	}
}

// String returns the human-readable name of the outcome.
func (o StopOutcome) String() string {
	if str, ok := getStopOutcomeStrings()[o]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the StopOutcome value is one of the defined outcomes.
func (o StopOutcome) Validate() error {
	if _, ok := getStopOutcomeStrings()[o]; !ok || o == OutcomeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"stop outcome is invalid",
			fmt.Errorf("%d is not a valid stop outcome", o),
		)
	}
	return nil
}
