package commands_test

import (
	"testing"

	"nemt/internal/core/application/usecases/commands"
	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver(t *testing.T) constraint.Driver {
	t.Helper()
	return constraint.Driver{
		ID:     kernel.NewUUID(),
		Gender: constraint.Female,
	}
}

func testVehicle(t *testing.T) constraint.Vehicle {
	t.Helper()
	profile, err := capacity.NewRequirements(map[capacity.SpaceType]int{
		capacity.Wheelchair: 2,
		capacity.Ambulatory: 3,
	})
	require.NoError(t, err)

	return constraint.Vehicle{
		ID:              kernel.NewUUID(),
		Type:            constraint.WheelchairVan,
		CapacityProfile: profile,
	}
}

func TestNewApplyAssignmentCommand_ValidInput(t *testing.T) {
	tripID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	routeManifestID := kernel.NewUUID()
	driver := testDriver(t)
	vehicle := testVehicle(t)

	cmd, err := commands.NewApplyAssignmentCommand(tripID, actorID, routeManifestID, driver, vehicle)
	require.NoError(t, err)
	assert.Equal(t, tripID, cmd.TripID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, routeManifestID, cmd.RouteManifestID())
	assert.Equal(t, driver.ID, cmd.Driver().ID)
	assert.Equal(t, vehicle.ID, cmd.Vehicle().ID)
}

func TestNewApplyAssignmentCommand_InvalidRouteManifestID(t *testing.T) {
	_, err := commands.NewApplyAssignmentCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{}, testDriver(t), testVehicle(t),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "routeManifestID")
}

func TestNewApplyAssignmentCommand_InvalidDriver(t *testing.T) {
	driver := testDriver(t)
	driver.Gender = constraint.Gender("Other")

	_, err := commands.NewApplyAssignmentCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), driver, testVehicle(t),
	)
	require.Error(t, err)
}

func TestNewApplyAssignmentCommand_InvalidVehicle(t *testing.T) {
	vehicle := testVehicle(t)
	vehicle.Type = constraint.VehicleType("Hovercraft")

	_, err := commands.NewApplyAssignmentCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), testDriver(t), vehicle,
	)
	require.Error(t, err)
}
