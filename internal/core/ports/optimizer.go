package ports

import (
	"context"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
)

// AssignmentRequest is the per-trip input handed to the external optimizer:
// what space the trip needs and which rules bound the candidate pairs.
type AssignmentRequest struct {
	TripID               kernel.UUID
	CapacityRequirements capacity.Vector
	Constraints          *constraint.TripConstraints
}

// Assignment is the optimizer's answer for one trip: the driver, vehicle,
// and route manifest the trip should be scheduled onto.
type Assignment struct {
	TripID          kernel.UUID
	DriverID        kernel.UUID
	VehicleID       kernel.UUID
	RouteManifestID kernel.UUID
}

// Optimizer is the outbound port to the external routing and assignment
// service. The core only produces its inputs and consumes its assignments;
// the solving itself is not this system's concern.
type Optimizer interface {
	// RequestAssignments submits unscheduled trips for optimization.
	// Assignments come back asynchronously through the application layer.
	RequestAssignments(ctx context.Context, requests []AssignmentRequest) error
}
