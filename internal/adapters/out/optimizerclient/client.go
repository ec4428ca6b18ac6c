// Package optimizerclient implements the outbound Optimizer port as an HTTP
// client. Unscheduled trips are submitted as a JSON batch; the optimizer
// answers asynchronously through the assignment intake endpoint.
package optimizerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nemt/internal/core/domain/model/capacity"
	"nemt/internal/core/domain/model/constraint"
	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// HTTPOptimizerClient submits assignment requests to the external routing
// and assignment service over HTTP.
type HTTPOptimizerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPOptimizerClient creates a client for the optimizer at baseURL.
func NewHTTPOptimizerClient(baseURL string) *HTTPOptimizerClient {
	return &HTTPOptimizerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// assignmentRequestJSON is the wire form of a single trip submission.
type assignmentRequestJSON struct {
	TripID               string               `json:"trip_id"`
	CapacityRequirements capacity.Vector      `json:"capacity_requirements"`
	Constraints          *tripConstraintsJSON `json:"constraints,omitempty"`
}

type tripConstraintsJSON struct {
	Preferences  *constraintSetJSON `json:"preferences,omitempty"`
	Requirements *constraintSetJSON `json:"requirements,omitempty"`
	Prohibitions *constraintSetJSON `json:"prohibitions,omitempty"`
}

type constraintSetJSON struct {
	Driver  *driverConstraintsJSON  `json:"driver,omitempty"`
	Vehicle *vehicleConstraintsJSON `json:"vehicle,omitempty"`
}

type driverConstraintsJSON struct {
	IDs                  []string `json:"ids,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	RequiredAttributeIDs []string `json:"required_attribute_ids,omitempty"`
}

type vehicleConstraintsJSON struct {
	IDs  []string `json:"ids,omitempty"`
	Type string   `json:"type,omitempty"`
}

// RequestAssignments posts the batch to the optimizer's trips endpoint.
// A non-2xx response is an error; the caller retries on the next feed cycle.
func (c *HTTPOptimizerClient) RequestAssignments(ctx context.Context, requests []ports.AssignmentRequest) error {
	if len(requests) == 0 {
		return nil
	}

	payload := make([]assignmentRequestJSON, 0, len(requests))
	for _, request := range requests {
		payload = append(payload, assignmentRequestJSON{
			TripID:               request.TripID.String(),
			CapacityRequirements: request.CapacityRequirements,
			Constraints:          constraintsToJSON(request.Constraints),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal assignment requests: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/trips", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build optimizer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit assignment requests: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("optimizer rejected assignment requests: status %d", resp.StatusCode)
	}
	return nil
}

func constraintsToJSON(constraints *constraint.TripConstraints) *tripConstraintsJSON {
	if constraints == nil {
		return nil
	}
	return &tripConstraintsJSON{
		Preferences:  setToJSON(constraints.Preferences),
		Requirements: setToJSON(constraints.Requirements),
		Prohibitions: setToJSON(constraints.Prohibitions),
	}
}

func setToJSON(set *constraint.ConstraintSet) *constraintSetJSON {
	if set == nil {
		return nil
	}

	doc := &constraintSetJSON{}
	if set.Driver != nil {
		doc.Driver = &driverConstraintsJSON{
			IDs:                  uuidsToStrings(set.Driver.IDs),
			Gender:               string(set.Driver.Gender),
			RequiredAttributeIDs: set.Driver.RequiredAttributeIDs,
		}
	}
	if set.Vehicle != nil {
		doc.Vehicle = &vehicleConstraintsJSON{
			IDs:  uuidsToStrings(set.Vehicle.IDs),
			Type: string(set.Vehicle.Type),
		}
	}
	return doc
}

func uuidsToStrings(ids []kernel.UUID) []string {
	if len(ids) == 0 {
		return nil
	}
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
