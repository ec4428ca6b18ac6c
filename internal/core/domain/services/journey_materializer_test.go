package services_test

import (
	"testing"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"
	"nemt/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopTemplate(t *testing.T, stopType trip.StopType, startOffset time.Duration) standingorder.StopTemplate {
	t.Helper()
	return standingorder.StopTemplate{
		Type:          stopType,
		AccessPointID: kernel.NewUUID(),
		PlaceID:       kernel.NewUUID(),
		Duration:      5 * time.Minute,
		TimeWindows: []standingorder.TimeWindowTemplate{
			{StartOffset: startOffset, EndOffset: startOffset + 30*time.Minute},
		},
	}
}

func roundTripTemplate(t *testing.T) standingorder.JourneyTemplate {
	t.Helper()
	requirements, err := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
	require.NoError(t, err)
	transition, err := journey.NewLegTransition(journey.WaitAndReturn, 45*time.Minute)
	require.NoError(t, err)

	return standingorder.JourneyTemplate{
		FundingSourceID:      kernel.NewUUID(),
		CapacityRequirements: requirements,
		Legs: []standingorder.LegTemplate{
			{
				TransitionToNext: &transition,
				Stops: []standingorder.StopTemplate{
					stopTemplate(t, trip.Pickup, 8*time.Hour),
					stopTemplate(t, trip.Dropoff, 9*time.Hour),
				},
			},
			{
				Stops: []standingorder.StopTemplate{
					stopTemplate(t, trip.Pickup, 11*time.Hour),
					stopTemplate(t, trip.Dropoff, 12*time.Hour),
				},
			},
		},
	}
}

func TestJourneyMaterializer_Materialize(t *testing.T) {
	materializer := services.NewJourneyMaterializer()
	occurrenceDate := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	t.Run("should backfill directive across wait-and-return round trip", func(t *testing.T) {
		passengerID := kernel.NewUUID()
		sourceID := kernel.NewUUID()

		generated, trips, err := materializer.Materialize(
			roundTripTemplate(t), passengerID, occurrenceDate, sourceID, "Wednesday dialysis",
		)

		require.NoError(t, err)
		require.Len(t, trips, 2)
		require.Len(t, generated.Legs(), 2)

		// outbound trip points at the return trip
		outbound, inbound := trips[0], trips[1]
		require.NotNil(t, outbound.PostTripDirective())
		assert.True(t, outbound.PostTripDirective().NextTripID.IsEqual(inbound.ID()))
		assert.Equal(t, 45*time.Minute, outbound.PostTripDirective().Duration)

		// last leg has nothing to transition to
		assert.Nil(t, inbound.PostTripDirective())

		assert.True(t, generated.Legs()[0].Trip().IsEqual(outbound.ID()))
		assert.True(t, generated.Legs()[1].Trip().IsEqual(inbound.ID()))
		require.NotNil(t, generated.SourceStandingOrder())
		assert.True(t, generated.SourceStandingOrder().IsEqual(sourceID))
		assert.Equal(t, "Wednesday dialysis", generated.Name())
	})

	t.Run("should generate balanced schedulable trips", func(t *testing.T) {
		actorID := kernel.NewUUID()

		_, trips, err := materializer.Materialize(
			roundTripTemplate(t), kernel.NewUUID(), occurrenceDate, kernel.NewUUID(), "",
		)
		require.NoError(t, err)

		for _, generated := range trips {
			assert.Equal(t, trip.PendingApproval, generated.Status())
			require.NoError(t, generated.Approve(actorID))
			require.NoError(t, generated.Schedule(actorID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()))
		}
	})

	t.Run("should project time windows onto the occurrence date", func(t *testing.T) {
		_, trips, err := materializer.Materialize(
			roundTripTemplate(t), kernel.NewUUID(), occurrenceDate, kernel.NewUUID(), "",
		)
		require.NoError(t, err)

		pickup := trips[0].Stops()[0]
		require.Len(t, pickup.TimeWindows(), 1)
		assert.Equal(t,
			time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
			pickup.TimeWindows()[0].Earliest(),
		)
	})

	t.Run("should inherit funding and capacity from the template", func(t *testing.T) {
		template := roundTripTemplate(t)

		_, trips, err := materializer.Materialize(
			template, kernel.NewUUID(), occurrenceDate, kernel.NewUUID(), "",
		)
		require.NoError(t, err)

		for _, generated := range trips {
			assert.True(t, generated.FundingSource().IsEqual(template.FundingSourceID))
			assert.True(t, generated.CapacityRequirements().IsEqual(template.CapacityRequirements))
			require.NotNil(t, generated.Journey())
		}

		// pickup boards the requirement, dropoff releases it
		assert.Equal(t, 1, trips[0].Stops()[0].CapacityDelta().Get(capacity.Wheelchair))
		assert.Equal(t, -1, trips[0].Stops()[1].CapacityDelta().Get(capacity.Wheelchair))
	})

	t.Run("should reject template with driver-service stops", func(t *testing.T) {
		template := roundTripTemplate(t)
		template.Legs[1].Stops[0].Type = trip.Refuel

		_, _, err := materializer.Materialize(
			template, kernel.NewUUID(), occurrenceDate, kernel.NewUUID(), "",
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, standingorder.ErrNonPassengerStopTemplate)
	})
}
