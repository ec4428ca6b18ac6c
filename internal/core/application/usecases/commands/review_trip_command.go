package commands

import (
	"errors"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrReviewTripCommandIsNotConstructed = errors.New(
		"ReviewTripCommand must be created via NewReviewTripCommand constructor",
	)
)

// ReviewDecision is the reviewer's verdict on a pending trip.
type ReviewDecision string

const (
	// DecisionApprove accepts the trip for scheduling.
	DecisionApprove ReviewDecision = "approve"

	// DecisionReject declines the trip with a reason.
	DecisionReject ReviewDecision = "reject"
)

// ReviewTripCommand represents a reviewer's decision on a trip in
// PendingApproval status. Rejections must carry a reason.
type ReviewTripCommand struct { //nolint:recvcheck //using for validation
	tripID   kernel.UUID
	actorID  kernel.UUID
	decision ReviewDecision
	reason   string

	guard guard.ConstructorGuard
}

// NewReviewTripCommand creates a command carrying a review decision.
// Returns an error for unknown decisions or a rejection without a reason.
func NewReviewTripCommand(
	tripID kernel.UUID,
	actorID kernel.UUID,
	decision ReviewDecision,
	reason string,
) (ReviewTripCommand, error) {
	reviewCommand := ReviewTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reviewCommand.setTripID(tripID),
		reviewCommand.setActorID(actorID),
		reviewCommand.setDecision(decision, reason),
	); err != nil {
		return ReviewTripCommand{}, err
	}

	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewTripCommand) Validate() error {
	return c.guard.Validate(ErrReviewTripCommandIsNotConstructed)
}

// TripID returns the trip being reviewed.
func (c ReviewTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// ActorID returns the reviewing user.
func (c ReviewTripCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Decision returns the review verdict.
func (c ReviewTripCommand) Decision() ReviewDecision {
	return c.decision
}

// Reason returns the rejection reason. Empty on approvals.
func (c ReviewTripCommand) Reason() string {
	return c.reason
}

func (c *ReviewTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}

	c.tripID = tripID
	return nil
}

func (c *ReviewTripCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	c.actorID = actorID
	return nil
}

func (c *ReviewTripCommand) setDecision(decision ReviewDecision, reason string) error {
	switch decision {
	case DecisionApprove:
	case DecisionReject:
		if reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
	default:
		return errs.NewValueIsInvalidError("decision")
	}

	c.decision = decision
	c.reason = reason
	return nil
}
