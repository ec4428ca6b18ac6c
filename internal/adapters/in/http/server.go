// Package http exposes the transport surface of the platform: trip intake and
// review, stop lifecycle events from driver devices, standing order creation,
// and assignment intake from the optimizer.
package http

import (
	"net/http"
	"time"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/application/usecases/queries"
	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the platform API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createTripHandler          commands.CreateTripCommandHandler
	reviewTripHandler          commands.ReviewTripCommandHandler
	cancelTripHandler          commands.CancelTripCommandHandler
	transitionStopHandler      commands.TransitionStopCommandHandler
	createStandingOrderHandler commands.CreateStandingOrderCommandHandler
	applyAssignmentHandler     commands.ApplyAssignmentCommandHandler

	// Query handlers
	getUnscheduledTripsHandler queries.GetUnscheduledTripsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createTripHandler commands.CreateTripCommandHandler,
	reviewTripHandler commands.ReviewTripCommandHandler,
	cancelTripHandler commands.CancelTripCommandHandler,
	transitionStopHandler commands.TransitionStopCommandHandler,
	createStandingOrderHandler commands.CreateStandingOrderCommandHandler,
	applyAssignmentHandler commands.ApplyAssignmentCommandHandler,
	getUnscheduledTripsHandler queries.GetUnscheduledTripsQueryHandler,
) *Server {
	return &Server{
		createTripHandler:          createTripHandler,
		reviewTripHandler:          reviewTripHandler,
		cancelTripHandler:          cancelTripHandler,
		transitionStopHandler:      transitionStopHandler,
		createStandingOrderHandler: createStandingOrderHandler,
		applyAssignmentHandler:     applyAssignmentHandler,
		getUnscheduledTripsHandler: getUnscheduledTripsHandler,
	}
}

// RegisterRoutes attaches the API handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/trips", s.CreateTrip)
	api.POST("/trips/:tripId/review", s.ReviewTrip)
	api.POST("/trips/:tripId/cancel", s.CancelTrip)
	api.POST("/trips/:tripId/stops/:stopId/events", s.TransitionStop)
	api.POST("/standing-orders", s.CreateStandingOrder)
	api.POST("/assignments", s.ApplyAssignment)
	api.GET("/trips/unscheduled", s.GetUnscheduledTrips)
}

// Error is the JSON error envelope for all failure responses.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TimeWindowRequest is one absolute service window of a stop.
type TimeWindowRequest struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// NewStopRequest is the payload for one stop of a new trip.
type NewStopRequest struct {
	Type            string              `json:"type"`
	PassengerID     string              `json:"passengerId"`
	AccessPointID   string              `json:"accessPointId"`
	PlaceID         string              `json:"placeId"`
	CapacityDelta   map[string]int      `json:"capacityDelta"`
	DurationSeconds int64               `json:"durationSeconds"`
	TimeWindows     []TimeWindowRequest `json:"timeWindows"`
}

// DriverConstraintsRequest names the drivers, gender, or attributes one
// constraint tier binds.
type DriverConstraintsRequest struct {
	IDs                  []string `json:"ids,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	RequiredAttributeIDs []string `json:"requiredAttributeIds,omitempty"`
}

// VehicleConstraintsRequest names the vehicles or vehicle type one
// constraint tier binds.
type VehicleConstraintsRequest struct {
	IDs  []string `json:"ids,omitempty"`
	Type string   `json:"type,omitempty"`
}

// ConstraintSetRequest is one tier of driver and vehicle constraints.
type ConstraintSetRequest struct {
	Driver  *DriverConstraintsRequest  `json:"driver,omitempty"`
	Vehicle *VehicleConstraintsRequest `json:"vehicle,omitempty"`
}

// TripConstraintsRequest is the three-tier constraint payload attached to a
// trip or a standing order's journey template.
type TripConstraintsRequest struct {
	Preferences  *ConstraintSetRequest `json:"preferences,omitempty"`
	Requirements *ConstraintSetRequest `json:"requirements,omitempty"`
	Prohibitions *ConstraintSetRequest `json:"prohibitions,omitempty"`
}

// NewTripRequest is the payload for trip creation.
type NewTripRequest struct {
	PassengerID          string                  `json:"passengerId"`
	FundingSourceID      string                  `json:"fundingSourceId"`
	PickupType           string                  `json:"pickupType"`
	CapacityRequirements map[string]int          `json:"capacityRequirements"`
	Stops                []NewStopRequest        `json:"stops"`
	Constraints          *TripConstraintsRequest `json:"constraints,omitempty"`
}

// CreateTrip handles POST /api/v1/trips - registers a new trip in
// pending-approval status.
func (s *Server) CreateTrip(ctx echo.Context) error {
	var request NewTripRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	passengerID, err := kernel.UUIDFromString(request.PassengerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid passenger id: " + err.Error(),
		})
	}

	fundingSourceID, err := kernel.UUIDFromString(request.FundingSourceID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid funding source id: " + err.Error(),
		})
	}

	requirements, err := capacity.NewRequirements(spaceCounts(request.CapacityRequirements))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid capacity requirements: " + err.Error(),
		})
	}

	stops := make([]*trip.Stop, 0, len(request.Stops))
	for _, stopRequest := range request.Stops {
		stop, stopErr := buildStop(stopRequest)
		if stopErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid stop: " + stopErr.Error(),
			})
		}
		stops = append(stops, stop)
	}

	constraints, err := buildConstraints(request.Constraints)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid constraints: " + err.Error(),
		})
	}

	tripID := kernel.NewUUID()
	cmd, err := commands.NewCreateTripCommand(
		tripID, passengerID, fundingSourceID,
		trip.PickupType(request.PickupType), requirements, stops, constraints,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid trip data: " + err.Error(),
		})
	}

	if handleErr := s.createTripHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create trip",
		})
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": tripID.String()})
}

// ReviewRequest is the payload for a trip review decision.
type ReviewRequest struct {
	ActorID  string `json:"actorId"`
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// ReviewTrip handles POST /api/v1/trips/:tripId/review - approves or rejects
// a pending trip.
func (s *Server) ReviewTrip(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("tripId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid trip id: " + err.Error(),
		})
	}

	var request ReviewRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid actor id: " + err.Error(),
		})
	}

	cmd, err := commands.NewReviewTripCommand(
		tripID, actorID, commands.ReviewDecision(request.Decision), request.Reason)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid review: " + err.Error(),
		})
	}

	if handleErr := s.reviewTripHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to review trip: " + handleErr.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest is the payload for a trip cancellation.
type CancelRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

// CancelTrip handles POST /api/v1/trips/:tripId/cancel - cancels a trip that
// has not started executing.
func (s *Server) CancelTrip(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("tripId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid trip id: " + err.Error(),
		})
	}

	var request CancelRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid actor id: " + err.Error(),
		})
	}

	cmd, err := commands.NewCancelTripCommand(tripID, actorID, request.Reason)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancellation: " + err.Error(),
		})
	}

	if handleErr := s.cancelTripHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to cancel trip: " + handleErr.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StopEventRequest is the payload for one stop lifecycle event from a
// driver device.
type StopEventRequest struct {
	ActorID    string     `json:"actorId"`
	Event      string     `json:"event"`
	OccurredAt *time.Time `json:"occurredAt"`
	Outcome    string     `json:"outcome"`
}

// TransitionStop handles POST /api/v1/trips/:tripId/stops/:stopId/events -
// applies a dispatch, depart, arrive, complete, no-show, or cancel event to
// one stop.
func (s *Server) TransitionStop(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("tripId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid trip id: " + err.Error(),
		})
	}

	stopID, err := kernel.UUIDFromString(ctx.Param("stopId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid stop id: " + err.Error(),
		})
	}

	var request StopEventRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid actor id: " + err.Error(),
		})
	}

	var occurredAt time.Time
	if request.OccurredAt != nil {
		occurredAt = *request.OccurredAt
	}

	cmd, err := commands.NewTransitionStopCommand(
		tripID, stopID, actorID,
		commands.StopEvent(request.Event), occurredAt, parseOutcome(request.Outcome))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid stop event: " + err.Error(),
		})
	}

	if handleErr := s.transitionStopHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to apply stop event: " + handleErr.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TimeWindowTemplateRequest is a recurring service window expressed as
// second offsets from midnight of the occurrence date.
type TimeWindowTemplateRequest struct {
	StartOffsetSeconds int64 `json:"startOffsetSeconds"`
	EndOffsetSeconds   int64 `json:"endOffsetSeconds"`
}

// StopTemplateRequest is the blueprint payload for one generated stop.
type StopTemplateRequest struct {
	Type            string                      `json:"type"`
	AccessPointID   string                      `json:"accessPointId"`
	PlaceID         string                      `json:"placeId"`
	DurationSeconds int64                       `json:"durationSeconds"`
	TimeWindows     []TimeWindowTemplateRequest `json:"timeWindows"`
}

// LegTransitionRequest describes how a journey moves from one leg to the
// next, e.g. a wait-and-return hold at the destination.
type LegTransitionRequest struct {
	Kind            string `json:"kind"`
	DurationSeconds int64  `json:"durationSeconds"`
}

// LegTemplateRequest is the blueprint payload for one generated leg.
type LegTemplateRequest struct {
	Stops            []StopTemplateRequest `json:"stops"`
	TransitionToNext *LegTransitionRequest `json:"transitionToNext,omitempty"`
}

// NewStandingOrderRequest is the payload for standing order creation.
type NewStandingOrderRequest struct {
	Name                 string                  `json:"name"`
	PassengerID          string                  `json:"passengerId"`
	RecurrenceRule       string                  `json:"recurrenceRule"`
	EffectiveStart       time.Time               `json:"effectiveStart"`
	EffectiveEnd         time.Time               `json:"effectiveEnd"`
	ExclusionDates       []time.Time             `json:"exclusionDates"`
	FundingSourceID      string                  `json:"fundingSourceId"`
	CapacityRequirements map[string]int          `json:"capacityRequirements"`
	Constraints          *TripConstraintsRequest `json:"constraints,omitempty"`
	Legs                 []LegTemplateRequest    `json:"legs"`
}

// CreateStandingOrder handles POST /api/v1/standing-orders - registers a
// recurring transportation need.
func (s *Server) CreateStandingOrder(ctx echo.Context) error {
	var request NewStandingOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	passengerID, err := kernel.UUIDFromString(request.PassengerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid passenger id: " + err.Error(),
		})
	}

	effectiveRange, err := kernel.NewTimeWindow(request.EffectiveStart, request.EffectiveEnd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid effective range: " + err.Error(),
		})
	}

	template, err := buildTemplate(request)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid journey template: " + err.Error(),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateStandingOrderCommand(
		orderID, request.Name, passengerID, request.RecurrenceRule,
		effectiveRange, request.ExclusionDates, template,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid standing order data: " + err.Error(),
		})
	}

	if handleErr := s.createStandingOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create standing order",
		})
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// AssignedDriverRequest describes the driver the optimizer paired with a trip.
type AssignedDriverRequest struct {
	ID           string   `json:"id"`
	Gender       string   `json:"gender"`
	AttributeIDs []string `json:"attributeIds"`
}

// AssignedVehicleRequest describes the vehicle the optimizer paired with a trip.
type AssignedVehicleRequest struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	CapacityProfile map[string]int `json:"capacityProfile"`
}

// AssignmentRequest is the optimizer's answer for one trip.
type AssignmentRequest struct {
	TripID          string                 `json:"tripId"`
	ActorID         string                 `json:"actorId"`
	RouteManifestID string                 `json:"routeManifestId"`
	Driver          AssignedDriverRequest  `json:"driver"`
	Vehicle         AssignedVehicleRequest `json:"vehicle"`
}

// ApplyAssignment handles POST /api/v1/assignments - schedules an approved
// trip onto the driver and vehicle the optimizer selected.
func (s *Server) ApplyAssignment(ctx echo.Context) error {
	var request AssignmentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	tripID, err := kernel.UUIDFromString(request.TripID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid trip id: " + err.Error(),
		})
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid actor id: " + err.Error(),
		})
	}

	routeManifestID, err := kernel.UUIDFromString(request.RouteManifestID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid route manifest id: " + err.Error(),
		})
	}

	driverID, err := kernel.UUIDFromString(request.Driver.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid driver id: " + err.Error(),
		})
	}

	vehicleID, err := kernel.UUIDFromString(request.Vehicle.ID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid vehicle id: " + err.Error(),
		})
	}

	profile, err := capacity.NewRequirements(spaceCounts(request.Vehicle.CapacityProfile))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid capacity profile: " + err.Error(),
		})
	}

	driver := constraint.Driver{
		ID:           driverID,
		Gender:       constraint.Gender(request.Driver.Gender),
		AttributeIDs: request.Driver.AttributeIDs,
	}
	vehicle := constraint.Vehicle{
		ID:              vehicleID,
		Type:            constraint.VehicleType(request.Vehicle.Type),
		CapacityProfile: profile,
	}

	cmd, err := commands.NewApplyAssignmentCommand(tripID, actorID, routeManifestID, driver, vehicle)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid assignment: " + err.Error(),
		})
	}

	if handleErr := s.applyAssignmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to apply assignment: " + handleErr.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnscheduledTrip is one approved trip awaiting assignment.
type UnscheduledTrip struct {
	ID                   string  `json:"id"`
	PassengerID          string  `json:"passengerId"`
	CapacityRequirements string  `json:"capacityRequirements"`
	Constraints          *string `json:"constraints,omitempty"`
}

// GetUnscheduledTrips handles GET /api/v1/trips/unscheduled - retrieves all
// approved trips awaiting assignment.
func (s *Server) GetUnscheduledTrips(ctx echo.Context) error {
	query := queries.NewGetUnscheduledTripsQuery()

	trips, err := s.getUnscheduledTripsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve unscheduled trips",
		})
	}

	response := make([]UnscheduledTrip, len(trips))
	for i, unscheduled := range trips {
		response[i] = UnscheduledTrip{
			ID:                   unscheduled.ID.String(),
			PassengerID:          unscheduled.PassengerID.String(),
			CapacityRequirements: unscheduled.CapacityRequirements,
			Constraints:          unscheduled.Constraints,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// buildStop converts a stop payload into a constructed stop entity.
func buildStop(request NewStopRequest) (*trip.Stop, error) {
	accessPointID, err := kernel.UUIDFromString(request.AccessPointID)
	if err != nil {
		return nil, err
	}
	placeID, err := kernel.UUIDFromString(request.PlaceID)
	if err != nil {
		return nil, err
	}

	var passengerID *kernel.UUID
	if request.PassengerID != "" {
		parsed, idErr := kernel.UUIDFromString(request.PassengerID)
		if idErr != nil {
			return nil, idErr
		}
		passengerID = &parsed
	}

	delta, err := capacity.NewDelta(spaceCounts(request.CapacityDelta))
	if err != nil {
		return nil, err
	}

	windows := make([]kernel.TimeWindow, 0, len(request.TimeWindows))
	for _, windowRequest := range request.TimeWindows {
		window, windowErr := kernel.NewTimeWindow(windowRequest.Earliest, windowRequest.Latest)
		if windowErr != nil {
			return nil, windowErr
		}
		windows = append(windows, window)
	}

	return trip.NewPassengerStop(
		kernel.NewUUID(), trip.StopType(request.Type), passengerID,
		accessPointID, placeID, delta,
		time.Duration(request.DurationSeconds)*time.Second, windows,
	)
}

// buildTemplate converts a standing order payload into a journey template.
func buildTemplate(request NewStandingOrderRequest) (standingorder.JourneyTemplate, error) {
	fundingSourceID, err := kernel.UUIDFromString(request.FundingSourceID)
	if err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	requirements, err := capacity.NewRequirements(spaceCounts(request.CapacityRequirements))
	if err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	constraints, err := buildConstraints(request.Constraints)
	if err != nil {
		return standingorder.JourneyTemplate{}, err
	}

	legs := make([]standingorder.LegTemplate, 0, len(request.Legs))
	for _, legRequest := range request.Legs {
		leg := standingorder.LegTemplate{
			Stops: make([]standingorder.StopTemplate, 0, len(legRequest.Stops)),
		}
		if legRequest.TransitionToNext != nil {
			transition, transitionErr := journey.NewLegTransition(
				journey.TransitionKind(legRequest.TransitionToNext.Kind),
				time.Duration(legRequest.TransitionToNext.DurationSeconds)*time.Second,
			)
			if transitionErr != nil {
				return standingorder.JourneyTemplate{}, transitionErr
			}
			leg.TransitionToNext = &transition
		}
		for _, stopRequest := range legRequest.Stops {
			accessPointID, stopErr := kernel.UUIDFromString(stopRequest.AccessPointID)
			if stopErr != nil {
				return standingorder.JourneyTemplate{}, stopErr
			}
			placeID, stopErr := kernel.UUIDFromString(stopRequest.PlaceID)
			if stopErr != nil {
				return standingorder.JourneyTemplate{}, stopErr
			}
			windows := make([]standingorder.TimeWindowTemplate, 0, len(stopRequest.TimeWindows))
			for _, windowRequest := range stopRequest.TimeWindows {
				windows = append(windows, standingorder.TimeWindowTemplate{
					StartOffset: time.Duration(windowRequest.StartOffsetSeconds) * time.Second,
					EndOffset:   time.Duration(windowRequest.EndOffsetSeconds) * time.Second,
				})
			}
			leg.Stops = append(leg.Stops, standingorder.StopTemplate{
				Type:          trip.StopType(stopRequest.Type),
				AccessPointID: accessPointID,
				PlaceID:       placeID,
				Duration:      time.Duration(stopRequest.DurationSeconds) * time.Second,
				TimeWindows:   windows,
			})
		}
		legs = append(legs, leg)
	}

	return standingorder.JourneyTemplate{
		FundingSourceID:      fundingSourceID,
		CapacityRequirements: requirements,
		Constraints:          constraints,
		Legs:                 legs,
	}, nil
}

// buildConstraints converts a constraint payload into domain trip constraints.
// A nil payload means the trip carries no constraints.
func buildConstraints(request *TripConstraintsRequest) (*constraint.TripConstraints, error) {
	if request == nil {
		return nil, nil
	}

	preferences, err := buildConstraintSet(request.Preferences)
	if err != nil {
		return nil, err
	}
	requirements, err := buildConstraintSet(request.Requirements)
	if err != nil {
		return nil, err
	}
	prohibitions, err := buildConstraintSet(request.Prohibitions)
	if err != nil {
		return nil, err
	}

	return &constraint.TripConstraints{
		Preferences:  preferences,
		Requirements: requirements,
		Prohibitions: prohibitions,
	}, nil
}

func buildConstraintSet(request *ConstraintSetRequest) (*constraint.ConstraintSet, error) {
	if request == nil {
		return nil, nil
	}

	set := &constraint.ConstraintSet{}
	if request.Driver != nil {
		ids, err := parseUUIDs(request.Driver.IDs)
		if err != nil {
			return nil, err
		}
		set.Driver = &constraint.DriverConstraints{
			IDs:                  ids,
			Gender:               constraint.Gender(request.Driver.Gender),
			RequiredAttributeIDs: request.Driver.RequiredAttributeIDs,
		}
	}
	if request.Vehicle != nil {
		ids, err := parseUUIDs(request.Vehicle.IDs)
		if err != nil {
			return nil, err
		}
		set.Vehicle = &constraint.VehicleConstraints{
			IDs:  ids,
			Type: constraint.VehicleType(request.Vehicle.Type),
		}
	}
	return set, nil
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// spaceCounts converts a JSON capacity object into domain space counts.
func spaceCounts(counts map[string]int) map[capacity.SpaceType]int {
	spaces := make(map[capacity.SpaceType]int, len(counts))
	for space, count := range counts {
		spaces[capacity.SpaceType(space)] = count
	}
	return spaces
}

// parseOutcome maps the wire outcome name to its domain value. Unknown names
// map to OutcomeUnknown, which command validation rejects for complete events.
func parseOutcome(outcome string) trip.StopOutcome {
	switch outcome {
	case "CompletedAsPlanned":
		return trip.OutcomeCompletedAsPlanned
	case "CompletedWithVariance":
		return trip.OutcomeCompletedWithVariance
	case "PassengerNoShow":
		return trip.OutcomePassengerNoShow
	case "CanceledAtDoor":
		return trip.OutcomeCanceledAtDoor
	case "VehicleBrokeDown":
		return trip.OutcomeVehicleBrokeDown
	default:
		return trip.OutcomeUnknown
	}
}
