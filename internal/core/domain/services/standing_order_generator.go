package services

import (
	"errors"
	"fmt"
	"time"

	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"

	"github.com/teambition/rrule-go"
)

var (
	// ErrOrderNotActive is returned when generation is invoked for a Paused
	// or Ended order. Callers must filter to Active orders first; this is a
	// precondition violation, not a silent no-op.
	ErrOrderNotActive = errors.New("standing order is not active")

	// ErrInvalidRecurrenceRule is returned when the order's RRULE string
	// cannot be parsed.
	ErrInvalidRecurrenceRule = errors.New("recurrence rule is invalid")
)

// MaterializedJourney pairs a generated journey with the trips that serve it.
// The trips are not owned by the journey, so the generator hands both back
// for the caller to persist together.
type MaterializedJourney struct {
	Journey *journey.Journey
	Trips   []*trip.Trip
}

// StandingOrderGenerator is a domain service that expands a standing order's
// recurrence rule into concrete journeys up to a horizon date.
//
// Generation is resumable and idempotent. Occurrences at or before the
// order's watermark are never reprocessed, and the watermark advances to the
// last occurrence inside the window, so re-running with an unchanged horizon
// yields nothing new. Excluded occurrences advance the watermark without
// producing a journey.
type StandingOrderGenerator struct {
	materializer JourneyMaterializer
}

// NewStandingOrderGenerator creates a generator backed by the given
// materializer.
func NewStandingOrderGenerator(materializer JourneyMaterializer) StandingOrderGenerator {
	return StandingOrderGenerator{materializer: materializer}
}

// GenerateUpTo expands the order's recurrence rule through the horizon and
// materializes one journey per non-excluded occurrence.
//
// The expansion window is [max(watermark, effective start), min(horizon,
// effective end)], with the watermark itself excluded. An open-ended
// effective range is clamped by the horizon alone. The order's watermark is
// advanced to the last occurrence inside the window; the order itself must
// be persisted by the caller for the advance to stick.
//
// Returns ErrOrderNotActive unless the order is Active, and
// ErrInvalidRecurrenceRule when the RRULE cannot be parsed.
func (g StandingOrderGenerator) GenerateUpTo(
	order *standingorder.StandingOrder,
	horizon time.Time,
) ([]MaterializedJourney, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.Status() != standingorder.Active {
		return nil, fmt.Errorf("%w: %s is %s", ErrOrderNotActive, order.ID(), order.Status())
	}

	occurrences, err := g.expand(order, horizon)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, nil
	}

	generated := make([]MaterializedJourney, 0, len(occurrences))
	for _, occurrence := range occurrences {
		if order.IsExcluded(occurrence) {
			continue
		}

		materialized, trips, err := g.materializer.Materialize(
			order.JourneyTemplate(),
			order.Passenger(),
			occurrence,
			order.ID(),
			order.Name(),
		)
		if err != nil {
			return nil, err
		}
		generated = append(generated, MaterializedJourney{Journey: materialized, Trips: trips})
	}

	if err := order.MarkGeneratedThrough(occurrences[len(occurrences)-1]); err != nil {
		return nil, err
	}
	return generated, nil
}

// expand lists the rule's occurrences inside the generation window, oldest
// first. An empty result means the window is empty or already generated.
func (g StandingOrderGenerator) expand(
	order *standingorder.StandingOrder,
	horizon time.Time,
) ([]time.Time, error) {
	option, err := rrule.StrToROption(order.RecurrenceRule())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecurrenceRule, err)
	}

	effectiveRange := order.EffectiveRange()
	option.Dtstart = effectiveRange.Earliest().UTC()

	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecurrenceRule, err)
	}

	end := horizon
	if latest := effectiveRange.Latest(); !latest.IsZero() && latest.Before(end) {
		end = latest
	}
	start := effectiveRange.Earliest()
	if start.After(end) {
		return nil, nil
	}

	occurrences := rule.Between(start.UTC(), end.UTC(), true)
	if watermark := order.LastGeneratedUpTo(); watermark != nil {
		unprocessed := occurrences[:0]
		for _, occurrence := range occurrences {
			if occurrence.After(*watermark) {
				unprocessed = append(unprocessed, occurrence)
			}
		}
		occurrences = unprocessed
	}
	return occurrences, nil
}
