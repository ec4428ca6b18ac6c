package standingorder_test

import (
	"testing"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/journey"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEffectiveRange(t *testing.T) kernel.TimeWindow {
	t.Helper()
	window, err := kernel.NewTimeWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return window
}

func testStopTemplate(t *testing.T, stopType trip.StopType) standingorder.StopTemplate {
	t.Helper()
	return standingorder.StopTemplate{
		Type:          stopType,
		AccessPointID: kernel.NewUUID(),
		PlaceID:       kernel.NewUUID(),
		Duration:      5 * time.Minute,
		TimeWindows: []standingorder.TimeWindowTemplate{
			{StartOffset: 9 * time.Hour, EndOffset: 9*time.Hour + 30*time.Minute},
		},
	}
}

func testJourneyTemplate(t *testing.T) standingorder.JourneyTemplate {
	t.Helper()
	requirements, err := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
	require.NoError(t, err)

	return standingorder.JourneyTemplate{
		FundingSourceID:      kernel.NewUUID(),
		CapacityRequirements: requirements,
		Legs: []standingorder.LegTemplate{
			{
				Stops: []standingorder.StopTemplate{
					testStopTemplate(t, trip.Pickup),
					testStopTemplate(t, trip.Dropoff),
				},
			},
		},
	}
}

func testOrder(t *testing.T) *standingorder.StandingOrder {
	t.Helper()
	order, err := standingorder.NewStandingOrder(
		kernel.NewUUID(), "Jane's dialysis runs", kernel.NewUUID(),
		"FREQ=WEEKLY;BYDAY=MO,WE,FR",
		testEffectiveRange(t), nil, testJourneyTemplate(t),
	)
	require.NoError(t, err)
	return order
}

func TestNewStandingOrder(t *testing.T) {
	t.Run("should create active order without watermark", func(t *testing.T) {
		order := testOrder(t)

		assert.Equal(t, standingorder.Active, order.Status())
		assert.Nil(t, order.LastGeneratedUpTo())
		assert.Empty(t, order.ExclusionDates())
		require.NoError(t, order.Validate())
	})

	t.Run("should reject empty recurrence rule", func(t *testing.T) {
		_, err := standingorder.NewStandingOrder(
			kernel.NewUUID(), "name", kernel.NewUUID(),
			"", testEffectiveRange(t), nil, testJourneyTemplate(t),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "recurrenceRule")
	})

	t.Run("should accept open-ended effective range", func(t *testing.T) {
		openEnded, err := kernel.NewTimeWindow(
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), time.Time{},
		)
		require.NoError(t, err)

		order, err := standingorder.NewStandingOrder(
			kernel.NewUUID(), "name", kernel.NewUUID(),
			"FREQ=DAILY", openEnded, nil, testJourneyTemplate(t),
		)

		require.NoError(t, err)
		assert.True(t, order.EffectiveRange().Latest().IsZero())
	})

	t.Run("should reject effective range without a start", func(t *testing.T) {
		openStart, err := kernel.NewTimeWindow(
			time.Time{}, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = standingorder.NewStandingOrder(
			kernel.NewUUID(), "name", kernel.NewUUID(),
			"FREQ=DAILY", openStart, nil, testJourneyTemplate(t),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "effectiveRange start")
	})

	t.Run("should reject template without legs", func(t *testing.T) {
		requirements, err := capacity.NewRequirements(map[capacity.SpaceType]int{capacity.Ambulatory: 1})
		require.NoError(t, err)

		_, err = standingorder.NewStandingOrder(
			kernel.NewUUID(), "name", kernel.NewUUID(),
			"FREQ=DAILY", testEffectiveRange(t), nil,
			standingorder.JourneyTemplate{
				FundingSourceID:      kernel.NewUUID(),
				CapacityRequirements: requirements,
			},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "legs")
	})

	t.Run("should normalize exclusion dates to UTC days", func(t *testing.T) {
		loc := time.FixedZone("PST", -8*60*60)
		order, err := standingorder.NewStandingOrder(
			kernel.NewUUID(), "name", kernel.NewUUID(),
			"FREQ=DAILY", testEffectiveRange(t),
			[]time.Time{
				time.Date(2026, 3, 9, 18, 30, 0, 0, loc),
				time.Date(2026, 3, 10, 2, 30, 0, 0, time.UTC),
			},
			testJourneyTemplate(t),
		)

		require.NoError(t, err)
		// both instants fall on the same UTC day
		assert.Len(t, order.ExclusionDates(), 1)
		assert.True(t, order.IsExcluded(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))
		assert.False(t, order.IsExcluded(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)))
	})
}

func TestStandingOrder_Lifecycle(t *testing.T) {
	t.Run("should pause and resume", func(t *testing.T) {
		order := testOrder(t)

		require.NoError(t, order.Pause())
		assert.Equal(t, standingorder.Paused, order.Status())

		require.NoError(t, order.Resume())
		assert.Equal(t, standingorder.Active, order.Status())
	})

	t.Run("should end from paused", func(t *testing.T) {
		order := testOrder(t)
		require.NoError(t, order.Pause())

		require.NoError(t, order.End())
		assert.Equal(t, standingorder.Ended, order.Status())
	})

	t.Run("should reject transitions out of Ended", func(t *testing.T) {
		order := testOrder(t)
		require.NoError(t, order.End())

		assert.ErrorIs(t, order.Pause(), standingorder.ErrInvalidTransition)
		assert.ErrorIs(t, order.Resume(), standingorder.ErrInvalidTransition)
		assert.ErrorIs(t, order.End(), standingorder.ErrInvalidTransition)
	})

	t.Run("should reject resuming an active order", func(t *testing.T) {
		order := testOrder(t)
		assert.ErrorIs(t, order.Resume(), standingorder.ErrInvalidTransition)
	})
}

func TestStandingOrder_Watermark(t *testing.T) {
	t.Run("should advance watermark forward", func(t *testing.T) {
		order := testOrder(t)
		first := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		second := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

		require.NoError(t, order.MarkGeneratedThrough(first))
		require.NotNil(t, order.LastGeneratedUpTo())
		assert.Equal(t, first, *order.LastGeneratedUpTo())

		require.NoError(t, order.MarkGeneratedThrough(second))
		assert.Equal(t, second, *order.LastGeneratedUpTo())
	})

	t.Run("should reject non-advancing watermark", func(t *testing.T) {
		order := testOrder(t)
		occurrence := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
		require.NoError(t, order.MarkGeneratedThrough(occurrence))

		err := order.MarkGeneratedThrough(occurrence)
		require.Error(t, err)
		assert.ErrorIs(t, err, standingorder.ErrWatermarkNotAdvancing)

		err = order.MarkGeneratedThrough(occurrence.Add(-24 * time.Hour))
		assert.ErrorIs(t, err, standingorder.ErrWatermarkNotAdvancing)
	})
}

func TestTimeWindowTemplate(t *testing.T) {
	t.Run("should project onto occurrence date", func(t *testing.T) {
		template := standingorder.TimeWindowTemplate{
			StartOffset: 9 * time.Hour,
			EndOffset:   9*time.Hour + 30*time.Minute,
		}

		window, err := template.On(time.Date(2026, 3, 11, 15, 42, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), window.Earliest())
		assert.Equal(t, time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC), window.Latest())
	})

	t.Run("should reject inverted window", func(t *testing.T) {
		template := standingorder.TimeWindowTemplate{
			StartOffset: 10 * time.Hour,
			EndOffset:   9 * time.Hour,
		}

		_, err := template.On(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
		require.Error(t, err)
	})
}

func TestJourneyTemplate_Validate(t *testing.T) {
	t.Run("should reject driver-service stop templates", func(t *testing.T) {
		template := testJourneyTemplate(t)
		template.Legs[0].Stops[0].Type = trip.Break

		err := template.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, standingorder.ErrNonPassengerStopTemplate)
	})

	t.Run("should reject transition on last leg", func(t *testing.T) {
		transition, err := journey.NewLegTransition(journey.WaitAndReturn, 10*time.Minute)
		require.NoError(t, err)

		template := testJourneyTemplate(t)
		template.Legs[len(template.Legs)-1].TransitionToNext = &transition

		err = template.Validate()
		assert.ErrorIs(t, err, journey.ErrDanglingTransition)
	})
}
