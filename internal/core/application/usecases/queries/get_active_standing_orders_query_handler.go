package queries

import (
	"context"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveStandingOrdersQueryHandler retrieves active standing orders from the database.
// Paused and ended orders are excluded; they never generate journeys.
type GetActiveStandingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveStandingOrdersQueryHandler creates a handler for active standing order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveStandingOrdersQueryHandler(db *gorm.DB) GetActiveStandingOrdersQueryHandler {
	return GetActiveStandingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all standing orders in active status.
// Results are sorted by order ID for consistent output.
func (h GetActiveStandingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveStandingOrdersQuery,
) ([]GetActiveStandingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveStandingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			last_generated_up_to
		FROM standing_orders
		WHERE status = ?
		ORDER BY id
	`, int(standingorder.Active)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveStandingOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.Name,
			&orderResp.LastGeneratedUpTo,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
