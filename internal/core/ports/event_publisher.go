package ports

import (
	"context"

	"nemt/internal/core/domain/model/kernel"
)

// DomainEventPublisher delivers recorded lifecycle events to downstream
// consumers (audit, notifications) after the owning transaction commits.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events []kernel.DomainEvent) error
}
