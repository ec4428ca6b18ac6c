// Package eventlog publishes domain events to the structured application log.
// It is the default DomainEventPublisher until a message broker is wired in;
// downstream audit tooling consumes the log stream.
package eventlog

import (
	"context"
	"log/slog"

	"nemt/internal/core/domain/model/kernel"
)

// SlogEventPublisher writes one log record per domain event.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher that records events through logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "domain_events"),
	}
}

// Publish logs every event in order. It never fails: a lost audit record must
// not roll back the state change that produced it.
func (p *SlogEventPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) error {
	for _, event := range events {
		p.logger.InfoContext(ctx, "domain event",
			"entity_type", event.EntityType,
			"entity_id", event.EntityID.String(),
			"from_state", event.FromState,
			"to_state", event.ToState,
			"actor_id", event.ActorID.String(),
			"occurred_at", event.OccurredAt,
		)
	}
	return nil
}
