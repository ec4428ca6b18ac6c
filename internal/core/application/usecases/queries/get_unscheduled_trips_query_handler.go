package queries

import (
	"context"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnscheduledTripsQueryHandler retrieves trips awaiting assignment from the database.
// Filters to approved trips so the optimizer only sees work that passed review.
//
// Example:
//
//	handler := NewGetUnscheduledTripsQueryHandler(db)
//	query := NewGetUnscheduledTripsQuery()
//
//	unscheduled, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get unscheduled trips: %v", err)
//	    return err
//	}
//
//	if len(unscheduled) > 0 {
//	    fmt.Printf("%d trips awaiting assignment\n", len(unscheduled))
//	}
type GetUnscheduledTripsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnscheduledTripsQueryHandler creates a handler for unscheduled trip queries.
// Requires a GORM database connection for query execution.
func NewGetUnscheduledTripsQueryHandler(db *gorm.DB) GetUnscheduledTripsQueryHandler {
	return GetUnscheduledTripsQueryHandler{db: db}
}

// Handle executes the query to retrieve all trips in approved status.
// Results are sorted by trip ID for consistent output.
func (h GetUnscheduledTripsQueryHandler) Handle(
	ctx context.Context,
	query GetUnscheduledTripsQuery,
) ([]GetUnscheduledTripsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trips := make([]GetUnscheduledTripsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			passenger_id,
			capacity_requirements,
			constraints
		FROM trips
		WHERE status = ?
		ORDER BY id
	`, int(trip.Approved)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tripResp GetUnscheduledTripsQueryResponse
		var id, passengerID uuid.UUID

		err = rows.Scan(
			&id,
			&passengerID,
			&tripResp.CapacityRequirements,
			&tripResp.Constraints,
		)
		if err != nil {
			return nil, err
		}

		tripID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		tripResp.ID = tripID

		passenger, idErr := kernel.UUIDFromBytes(passengerID[:])
		if idErr != nil {
			return nil, idErr
		}
		tripResp.PassengerID = passenger

		trips = append(trips, tripResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}
