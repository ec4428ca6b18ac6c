// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"nemt/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TripRepoFactory provides access to the trip repository within a transaction.
	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// JourneyRepoFactory provides access to the journey repository within a transaction.
	JourneyRepoFactory interface {
		JourneyRepository() ports.JourneyRepository
	}

	// StandingOrderRepoFactory provides access to the standing order repository within a transaction.
	StandingOrderRepoFactory interface {
		StandingOrderRepository() ports.StandingOrderRepository
	}

	// TripUoW manages transactions for trip-only operations.
	// Used when commands only modify trip aggregates.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	// TripUoWFactory creates new trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}

	// StandingOrderUoW manages transactions for standing-order-only operations.
	StandingOrderUoW interface {
		TxManager
		StandingOrderRepoFactory
	}

	// StandingOrderUoWFactory creates new standing order unit of work instances.
	StandingOrderUoWFactory interface {
		Create() StandingOrderUoW
	}

	// GenerationUoW manages transactions spanning standing orders, journeys,
	// and trips. Used by journey generation, which persists everything a
	// generation run produced in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.StandingOrderRepository()
	//   journeyRepo := uow.JourneyRepository()
	//   tripRepo := uow.TripRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	GenerationUoW interface {
		TxManager
		StandingOrderRepoFactory
		JourneyRepoFactory
		TripRepoFactory
	}

	// GenerationUoWFactory creates new unit of work instances for generation runs.
	GenerationUoWFactory interface {
		Create() GenerationUoW
	}
)
