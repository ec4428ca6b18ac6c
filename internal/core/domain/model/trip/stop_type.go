package trip

import (
	"fmt"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

// StopType discriminates the two families of stops inside a trip: passenger
// stops (Pickup, Dropoff) and driver-service stops (Break, Refuel,
// Maintenance, Wait).
type StopType string

const (
	// Pickup is a passenger stop where passengers board the vehicle.
	Pickup StopType = "pickup"

	// Dropoff is a passenger stop where passengers leave the vehicle.
	Dropoff StopType = "dropoff"

	// Break is a driver rest stop.
	Break StopType = "break"

	// Refuel is a fueling or charging stop.
	Refuel StopType = "refuel"

	// Maintenance is a vehicle-service stop.
	Maintenance StopType = "maintenance"

	// Wait is an idle stop, typically produced by a wait-and-return directive.
	Wait StopType = "wait"
)

// IsPassengerType reports whether the type belongs to the passenger family.
func (t StopType) IsPassengerType() bool {
	return t == Pickup || t == Dropoff
}

// Validate checks if the StopType value is one of the defined types.
func (t StopType) Validate() error {
	switch t {
	case Pickup, Dropoff, Break, Refuel, Maintenance, Wait:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"stop type is invalid",
		fmt.Errorf("%q is not a valid stop type", string(t)),
	)
}

// StopProcedureType identifies a driver procedure to perform at a stop, such
// as collecting a signature or securing a mobility device.
type StopProcedureType string

const (
	PassengerSignature     StopProcedureType = "PASSENGER_SIGNATURE"
	GuardianSignature      StopProcedureType = "GUARDIAN_SIGNATURE"
	FacilityStaffSignature StopProcedureType = "FACILITY_STAFF_SIGNATURE"
	PhotoOfDropoff         StopProcedureType = "PHOTO_OF_DROPOFF"
	ScanPatientID          StopProcedureType = "SCAN_PATIENT_ID"
	CollectCopay           StopProcedureType = "COLLECT_COPAY"
	SecureMobilityDevice   StopProcedureType = "SECURE_MOBILITY_DEVICE"
	AssistDoorToDoor       StopProcedureType = "ASSIST_DOOR_TO_DOOR"
	AssistHandToHand       StopProcedureType = "ASSIST_HAND_TO_HAND"
)

// ProcedureApplicability scopes a procedure rule to pickups, dropoffs, or any
// passenger stop.
type ProcedureApplicability string

const (
	AppliesToPickup  ProcedureApplicability = "PICKUP"
	AppliesToDropoff ProcedureApplicability = "DROPOFF"
	AppliesToAny     ProcedureApplicability = "ANY"
)

// ProcedureRule binds a procedure type to the stops it applies to.
type ProcedureRule struct {
	ProcedureID StopProcedureType
	AppliesTo   ProcedureApplicability
}

// ProcedureOverrides adjusts the inherited procedure set of a single stop:
// Add introduces extra rules, Remove suppresses inherited ones by type.
type ProcedureOverrides struct {
	Add    []ProcedureRule
	Remove []StopProcedureType
}

// StopDependency is a precedence edge: this stop must occur after the
// referenced one. Schedulers use these edges to order stops within a route.
type StopDependency struct {
	PrecedingStopID kernel.UUID
}
