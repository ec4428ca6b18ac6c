package optimizerclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nemt/internal/adapters/out/optimizerclient"
	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestAssignments_SubmitsBatch(t *testing.T) {
	// Arrange
	var capturedPath string
	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := optimizerclient.NewHTTPOptimizerClient(server.URL)

	tripID := kernel.NewUUID()
	requirements, err := capacity.NewRequirements(map[capacity.SpaceType]int{
		capacity.Wheelchair: 1,
	})
	require.NoError(t, err)

	constraints := &constraint.TripConstraints{
		Requirements: &constraint.ConstraintSet{
			Driver: &constraint.DriverConstraints{Gender: constraint.Female},
		},
	}

	// Act
	err = client.RequestAssignments(context.Background(), []ports.AssignmentRequest{
		{TripID: tripID, CapacityRequirements: requirements, Constraints: constraints},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/trips", capturedPath)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, tripID.String(), payload[0]["trip_id"])
	assert.Contains(t, string(capturedBody), "female")
	assert.Contains(t, string(capturedBody), "whc")
}

func Test_RequestAssignments_EmptyBatch_SkipsCall(t *testing.T) {
	// Arrange
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := optimizerclient.NewHTTPOptimizerClient(server.URL)

	// Act
	err := client.RequestAssignments(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.False(t, called)
}

func Test_RequestAssignments_ServerError_ReturnsError(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := optimizerclient.NewHTTPOptimizerClient(server.URL)

	// Act
	err := client.RequestAssignments(context.Background(), []ports.AssignmentRequest{
		{TripID: kernel.NewUUID(), CapacityRequirements: capacity.Zero()},
	})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
