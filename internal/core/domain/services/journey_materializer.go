package services

import (
	"fmt"
	"time"

	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"
)

// JourneyMaterializer is a domain service that expands a journey template
// into a concrete Journey and its Trips for one occurrence date.
//
// Materialization is a two-pass process. A leg's transition directive must be
// projected onto its generated trip as a post-trip directive pointing at the
// next leg's trip, and that trip does not exist until the next leg is
// materialized. Pass one therefore creates every trip; pass two backfills the
// post-trip directives using the now-known trip IDs.
//
// Generated stops inherit the template's capacity requirements as their
// deltas: a pickup boards the full requirement, a dropoff releases it. This
// keeps every generated trip's stop sequence balanced by construction.
type JourneyMaterializer struct{}

// NewJourneyMaterializer creates a new JourneyMaterializer instance.
func NewJourneyMaterializer() JourneyMaterializer {
	return JourneyMaterializer{}
}

// Materialize expands the template into one Journey and its Trips for the
// given occurrence date.
//
// Parameters:
//   - template: The journey blueprint (validated before any trip is created)
//   - passengerID: The passenger every generated trip serves
//   - occurrenceDate: The calendar day the journey happens on
//   - sourceStandingOrderID: The standing order being expanded
//   - name: Display label copied onto the generated journey
//
// Returns the journey and its trips in leg order, or an error if the
// template is invalid. Nothing is partially materialized on failure.
func (m JourneyMaterializer) Materialize(
	template standingorder.JourneyTemplate,
	passengerID kernel.UUID,
	occurrenceDate time.Time,
	sourceStandingOrderID kernel.UUID,
	name string,
) (*journey.Journey, []*trip.Trip, error) {
	if err := template.Validate(); err != nil {
		return nil, nil, err
	}
	if err := passengerID.Validate(); err != nil {
		return nil, nil, err
	}

	journeyID := kernel.NewUUID()

	// pass 1: create every leg's trip
	trips := make([]*trip.Trip, 0, len(template.Legs))
	for _, legTemplate := range template.Legs {
		legTrip, err := m.materializeLeg(template, legTemplate, passengerID, occurrenceDate, journeyID)
		if err != nil {
			return nil, nil, err
		}
		trips = append(trips, legTrip)
	}

	// pass 2: backfill post-trip directives with the successor trip IDs
	for i, legTemplate := range template.Legs {
		if legTemplate.TransitionToNext == nil {
			continue
		}
		directive, err := trip.NewPostTripDirective(legTemplate.TransitionToNext.Duration, trips[i+1].ID())
		if err != nil {
			return nil, nil, err
		}
		trips[i].SetPostTripDirective(directive)
	}

	legs := make([]journey.Leg, 0, len(template.Legs))
	for i, legTemplate := range template.Legs {
		leg, err := journey.NewLeg(trips[i].ID(), legTemplate.TransitionToNext)
		if err != nil {
			return nil, nil, err
		}
		legs = append(legs, leg)
	}

	generated, err := journey.NewJourney(journeyID, passengerID, legs, occurrenceDate)
	if err != nil {
		return nil, nil, err
	}
	generated.SetName(name)
	if err := generated.SetSourceStandingOrder(sourceStandingOrderID); err != nil {
		return nil, nil, err
	}

	return generated, trips, nil
}

// materializeLeg creates the trip for a single leg template.
func (m JourneyMaterializer) materializeLeg(
	template standingorder.JourneyTemplate,
	legTemplate standingorder.LegTemplate,
	passengerID kernel.UUID,
	occurrenceDate time.Time,
	journeyID kernel.UUID,
) (*trip.Trip, error) {
	stops := make([]*trip.Stop, 0, len(legTemplate.Stops))
	for _, stopTemplate := range legTemplate.Stops {
		stop, err := m.materializeStop(template, stopTemplate, passengerID, occurrenceDate)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	legTrip, err := trip.NewTrip(
		kernel.NewUUID(),
		passengerID,
		template.FundingSourceID,
		trip.PickupScheduled,
		template.CapacityRequirements,
		stops,
	)
	if err != nil {
		return nil, err
	}

	if template.Constraints != nil {
		if err := legTrip.SetConstraints(*template.Constraints); err != nil {
			return nil, err
		}
	}
	if err := legTrip.SetJourney(journeyID); err != nil {
		return nil, err
	}

	return legTrip, nil
}

// materializeStop creates one passenger stop from its template, projecting
// the recurring time windows onto the occurrence date.
func (m JourneyMaterializer) materializeStop(
	template standingorder.JourneyTemplate,
	stopTemplate standingorder.StopTemplate,
	passengerID kernel.UUID,
	occurrenceDate time.Time,
) (*trip.Stop, error) {
	windows := make([]kernel.TimeWindow, 0, len(stopTemplate.TimeWindows))
	for _, windowTemplate := range stopTemplate.TimeWindows {
		window, err := windowTemplate.On(occurrenceDate)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	delta := template.CapacityRequirements.Clone()
	switch stopTemplate.Type {
	case trip.Pickup:
		// board the full requirement
	case trip.Dropoff:
		delta = delta.Negate()
	default:
		return nil, fmt.Errorf("%w: got %s", standingorder.ErrNonPassengerStopTemplate, stopTemplate.Type)
	}

	stop, err := trip.NewPassengerStop(
		kernel.NewUUID(),
		stopTemplate.Type,
		&passengerID,
		stopTemplate.AccessPointID,
		stopTemplate.PlaceID,
		delta,
		stopTemplate.Duration,
		windows,
	)
	if err != nil {
		return nil, err
	}

	if stopTemplate.ProcedureOverrides != nil {
		stop.SetProcedureOverrides(stopTemplate.ProcedureOverrides)
	}
	return stop, nil
}
