package commands_test

import (
	"testing"
	"time"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionStopCommand_Dispatch(t *testing.T) {
	tripID := kernel.NewUUID()
	stopID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionStopCommand(
		tripID, stopID, actorID, commands.StopEventDispatch, time.Time{}, trip.OutcomeUnknown,
	)
	require.NoError(t, err)
	assert.Equal(t, tripID, cmd.TripID())
	assert.Equal(t, stopID, cmd.StopID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, commands.StopEventDispatch, cmd.Event())
}

func TestNewTransitionStopCommand_Complete(t *testing.T) {
	at := time.Date(2026, time.March, 11, 8, 12, 0, 0, time.UTC)

	cmd, err := commands.NewTransitionStopCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		commands.StopEventComplete, at, trip.OutcomeCompletedAsPlanned,
	)
	require.NoError(t, err)
	assert.Equal(t, at, cmd.OccurredAt())
	assert.Equal(t, trip.OutcomeCompletedAsPlanned, cmd.Outcome())
}

func TestNewTransitionStopCommand_ArriveWithoutTimestamp(t *testing.T) {
	_, err := commands.NewTransitionStopCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		commands.StopEventArrive, time.Time{}, trip.OutcomeUnknown,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "occurredAt")
}

func TestNewTransitionStopCommand_CompleteWithoutOutcome(t *testing.T) {
	at := time.Date(2026, time.March, 11, 8, 12, 0, 0, time.UTC)

	_, err := commands.NewTransitionStopCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		commands.StopEventComplete, at, trip.OutcomeUnknown,
	)
	require.Error(t, err)
}

func TestNewTransitionStopCommand_UnknownEvent(t *testing.T) {
	_, err := commands.NewTransitionStopCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		commands.StopEvent("teleport"), time.Time{}, trip.OutcomeUnknown,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event")
}
