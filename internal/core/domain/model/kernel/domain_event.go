package kernel

import (
	"time"

	"nemt/internal/pkg/errs"
)

// DomainEvent records a single lifecycle transition on an aggregate for the
// audit and notification collaborators. The core only emits these; delivery
// and logging are the collaborator's responsibility.
type DomainEvent struct {
	// EntityType names the kind of entity that transitioned, e.g. "Trip" or "Stop".
	EntityType string

	// EntityID identifies the entity that transitioned.
	EntityID UUID

	// FromState is the state the entity left.
	FromState string

	// ToState is the state the entity entered.
	ToState string

	// ActorID identifies the driver or dispatcher who initiated the transition.
	ActorID UUID

	// OccurredAt is when the transition was applied.
	OccurredAt time.Time
}

// NewDomainEvent creates a DomainEvent stamped with the current time.
// Returns an error if entityType is empty or either identifier is invalid.
func NewDomainEvent(entityType string, entityID UUID, fromState, toState string, actorID UUID) (DomainEvent, error) {
	if entityType == "" {
		return DomainEvent{}, errs.NewValueIsRequiredError("entityType")
	}
	if err := entityID.Validate(); err != nil {
		return DomainEvent{}, err
	}
	if err := actorID.Validate(); err != nil {
		return DomainEvent{}, err
	}

	return DomainEvent{
		EntityType: entityType,
		EntityID:   entityID,
		FromState:  fromState,
		ToState:    toState,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}, nil
}
