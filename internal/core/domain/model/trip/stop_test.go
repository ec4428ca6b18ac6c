package trip_test

import (
	"testing"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) kernel.TimeWindow {
	t.Helper()
	window, err := kernel.NewTimeWindow(
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return window
}

func testPickupStop(t *testing.T) *trip.Stop {
	t.Helper()
	passengerID := kernel.NewUUID()
	delta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Wheelchair: 1})
	require.NoError(t, err)

	stop, err := trip.NewPassengerStop(
		kernel.NewUUID(),
		trip.Pickup,
		&passengerID,
		kernel.NewUUID(),
		kernel.NewUUID(),
		delta,
		5*time.Minute,
		[]kernel.TimeWindow{testWindow(t)},
	)
	require.NoError(t, err)
	return stop
}

func TestNewPassengerStop(t *testing.T) {
	t.Run("should create pickup stop in Pending status", func(t *testing.T) {
		stop := testPickupStop(t)

		assert.Equal(t, trip.Pickup, stop.Type())
		assert.Equal(t, trip.StopPending, stop.Status())
		assert.NotNil(t, stop.Passenger())
		assert.Equal(t, 1, stop.CapacityDelta().Get(capacity.Wheelchair))
		assert.Nil(t, stop.ActualArrivalTime())
		require.NoError(t, stop.Validate())
	})

	t.Run("should allow companion-only stop without passenger", func(t *testing.T) {
		delta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Ambulatory: 1})
		require.NoError(t, err)

		stop, err := trip.NewPassengerStop(
			kernel.NewUUID(), trip.Pickup, nil,
			kernel.NewUUID(), kernel.NewUUID(),
			delta, time.Minute, []kernel.TimeWindow{testWindow(t)},
		)

		require.NoError(t, err)
		assert.Nil(t, stop.Passenger())
	})

	t.Run("should reject driver-service types", func(t *testing.T) {
		delta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Ambulatory: 1})
		require.NoError(t, err)

		_, err = trip.NewPassengerStop(
			kernel.NewUUID(), trip.Break, nil,
			kernel.NewUUID(), kernel.NewUUID(),
			delta, time.Minute, []kernel.TimeWindow{testWindow(t)},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a passenger stop type")
	})

	t.Run("should reject empty time windows", func(t *testing.T) {
		delta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Ambulatory: 1})
		require.NoError(t, err)

		_, err = trip.NewPassengerStop(
			kernel.NewUUID(), trip.Dropoff, nil,
			kernel.NewUUID(), kernel.NewUUID(),
			delta, time.Minute, nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeWindows")
	})

	t.Run("should join multiple validation failures", func(t *testing.T) {
		_, err := trip.NewPassengerStop(
			kernel.UUID{}, trip.Pickup, nil,
			kernel.UUID{}, kernel.UUID{},
			capacity.Zero(), -time.Minute, nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "accessPointID")
		assert.Contains(t, err.Error(), "placeID")
		assert.Contains(t, err.Error(), "duration")
		assert.Contains(t, err.Error(), "timeWindows")
	})
}

func TestNewDriverServiceStop(t *testing.T) {
	t.Run("should create break stop with zero capacity delta", func(t *testing.T) {
		location, err := kernel.NewGpsLocation(47.61, -122.33)
		require.NoError(t, err)

		stop, err := trip.NewDriverServiceStop(
			kernel.NewUUID(), trip.Break, &location,
			30*time.Minute, []kernel.TimeWindow{testWindow(t)},
		)

		require.NoError(t, err)
		assert.Equal(t, trip.Break, stop.Type())
		assert.True(t, stop.CapacityDelta().IsZero())
		assert.NotNil(t, stop.Location())
	})

	t.Run("should allow nil location", func(t *testing.T) {
		stop, err := trip.NewDriverServiceStop(
			kernel.NewUUID(), trip.Wait, nil,
			10*time.Minute, []kernel.TimeWindow{testWindow(t)},
		)

		require.NoError(t, err)
		assert.Nil(t, stop.Location())
	})

	t.Run("should reject passenger types", func(t *testing.T) {
		_, err := trip.NewDriverServiceStop(
			kernel.NewUUID(), trip.Pickup, nil,
			time.Minute, []kernel.TimeWindow{testWindow(t)},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a driver-service stop type")
	})
}

func TestStop_Lifecycle(t *testing.T) {
	arrivedAt := time.Date(2026, 3, 10, 8, 5, 0, 0, time.UTC)
	departedAt := time.Date(2026, 3, 10, 8, 12, 0, 0, time.UTC)

	advanceToArrived := func(t *testing.T, stop *trip.Stop) {
		t.Helper()
		require.NoError(t, stop.Dispatch())
		require.NoError(t, stop.Depart())
		require.NoError(t, stop.Arrive(arrivedAt))
	}

	t.Run("should walk the happy path to Completed", func(t *testing.T) {
		stop := testPickupStop(t)
		advanceToArrived(t, stop)

		require.NotNil(t, stop.ActualArrivalTime())
		assert.Equal(t, arrivedAt, *stop.ActualArrivalTime())

		err := stop.Complete(trip.OutcomeCompletedAsPlanned, departedAt)

		require.NoError(t, err)
		assert.Equal(t, trip.StopCompleted, stop.Status())
		assert.Equal(t, trip.OutcomeCompletedAsPlanned, stop.Outcome())
		require.NotNil(t, stop.ActualDepartureTime())
		assert.Equal(t, departedAt, *stop.ActualDepartureTime())
	})

	t.Run("should reject Complete without recorded arrival", func(t *testing.T) {
		stop := testPickupStop(t)
		require.NoError(t, stop.Dispatch())

		err := stop.Complete(trip.OutcomeCompletedAsPlanned, departedAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, trip.ErrArrivalNotRecorded)
		assert.Equal(t, trip.StopAssigned, stop.Status())
	})

	t.Run("should reject Complete with invalid outcome", func(t *testing.T) {
		stop := testPickupStop(t)
		advanceToArrived(t, stop)

		err := stop.Complete(trip.OutcomeUnknown, departedAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stop outcome is invalid")
	})

	t.Run("should mark no-show only after arrival", func(t *testing.T) {
		stop := testPickupStop(t)
		require.NoError(t, stop.Dispatch())
		require.NoError(t, stop.Depart())

		err := stop.MarkNoShow(departedAt)
		require.Error(t, err)
		assert.ErrorIs(t, err, trip.ErrArrivalNotRecorded)

		require.NoError(t, stop.Arrive(arrivedAt))
		require.NoError(t, stop.MarkNoShow(departedAt))
		assert.Equal(t, trip.StopNoShow, stop.Status())
		assert.Equal(t, trip.OutcomePassengerNoShow, stop.Outcome())
	})

	t.Run("should cancel from any non-terminal status", func(t *testing.T) {
		stop := testPickupStop(t)
		require.NoError(t, stop.Cancel())
		assert.Equal(t, trip.StopCanceled, stop.Status())
	})

	t.Run("should reject every transition once terminal", func(t *testing.T) {
		stop := testPickupStop(t)
		advanceToArrived(t, stop)
		require.NoError(t, stop.Complete(trip.OutcomeCompletedWithVariance, departedAt))

		assert.Error(t, stop.Dispatch())
		assert.Error(t, stop.Depart())
		assert.Error(t, stop.Arrive(arrivedAt))
		assert.Error(t, stop.Complete(trip.OutcomeCompletedAsPlanned, departedAt))
		assert.Error(t, stop.MarkNoShow(departedAt))
		assert.Error(t, stop.Cancel())
		assert.Equal(t, trip.StopCompleted, stop.Status())
	})
}

func TestRestoreStop(t *testing.T) {
	t.Run("should reconstruct stop with execution record", func(t *testing.T) {
		arrived := time.Date(2026, 3, 10, 8, 4, 0, 0, time.UTC)
		departed := time.Date(2026, 3, 10, 8, 10, 0, 0, time.UTC)
		delta, err := capacity.NewDelta(map[capacity.SpaceType]int{capacity.Wheelchair: -1})
		require.NoError(t, err)

		stop, err := trip.RestoreStop(
			kernel.NewUUID(), trip.Dropoff, trip.StopCompleted,
			nil, kernel.NewUUID(), kernel.NewUUID(),
			delta, 5*time.Minute, []kernel.TimeWindow{testWindow(t)},
			nil, trip.OutcomeCompletedAsPlanned, &arrived, &departed,
		)

		require.NoError(t, err)
		assert.Equal(t, trip.StopCompleted, stop.Status())
		assert.Equal(t, trip.OutcomeCompletedAsPlanned, stop.Outcome())
		require.NoError(t, stop.Validate())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := trip.RestoreStop(
			kernel.NewUUID(), trip.Dropoff, trip.StopStatus(42),
			nil, kernel.NewUUID(), kernel.NewUUID(),
			capacity.Zero(), time.Minute, []kernel.TimeWindow{testWindow(t)},
			nil, trip.OutcomeUnknown, nil, nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "stop status is invalid")
	})
}

func TestStop_Validate(t *testing.T) {
	t.Run("should reject directly instantiated stop", func(t *testing.T) {
		var stop trip.Stop
		assert.ErrorIs(t, stop.Validate(), trip.ErrStopIsNotConstructed)
	})

	t.Run("should reject nil stop", func(t *testing.T) {
		var stop *trip.Stop
		assert.ErrorIs(t, stop.Validate(), trip.ErrStopIsNotConstructed)
	})
}
