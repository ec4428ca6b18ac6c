package commands

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrGenerateJourneysCommandIsNotConstructed = errors.New(
		"GenerateJourneysCommand must be created via NewGenerateJourneysCommand constructor",
	)
)

// GenerateJourneysCommand represents a request to expand one standing order's
// recurrence rule into concrete journeys through the horizon date.
type GenerateJourneysCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	horizon time.Time

	guard guard.ConstructorGuard
}

// NewGenerateJourneysCommand creates a command to run journey generation for
// a standing order.
func NewGenerateJourneysCommand(orderID kernel.UUID, horizon time.Time) (GenerateJourneysCommand, error) {
	generateCommand := GenerateJourneysCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		generateCommand.setOrderID(orderID),
		generateCommand.setHorizon(horizon),
	); err != nil {
		return GenerateJourneysCommand{}, err
	}

	return generateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGenerateJourneysCommandIsNotConstructed if validation fails.
func (c GenerateJourneysCommand) Validate() error {
	return c.guard.Validate(ErrGenerateJourneysCommandIsNotConstructed)
}

// OrderID returns the standing order to expand.
func (c GenerateJourneysCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Horizon returns the date generation runs through.
func (c GenerateJourneysCommand) Horizon() time.Time {
	return c.horizon
}

func (c *GenerateJourneysCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *GenerateJourneysCommand) setHorizon(horizon time.Time) error {
	if horizon.IsZero() {
		return errs.NewValueIsRequiredError("horizon")
	}

	c.horizon = horizon
	return nil
}
