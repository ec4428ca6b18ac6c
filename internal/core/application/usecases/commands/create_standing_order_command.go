package commands

import (
	"errors"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/core/domain/model/standingorder"
	"nemt/internal/pkg/errs"
	"nemt/internal/pkg/guard"
)

var (
	ErrCreateStandingOrderCommandIsNotConstructed = errors.New(
		"CreateStandingOrderCommand must be created via NewCreateStandingOrderCommand constructor",
	)
)

// CreateStandingOrderCommand represents a request to register a recurring
// transportation booking. Carries the recurrence rule, the window it is
// effective within, the skipped calendar days, and the journey blueprint
// expanded per occurrence.
type CreateStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	name            string
	passengerID     kernel.UUID
	recurrenceRule  string
	effectiveRange  kernel.TimeWindow
	exclusionDates  []time.Time
	journeyTemplate standingorder.JourneyTemplate

	guard guard.ConstructorGuard
}

// NewCreateStandingOrderCommand creates a command to register a standing order.
// Validates the identities, the display name, the recurrence rule, the
// effective range, and the journey template.
func NewCreateStandingOrderCommand(
	orderID kernel.UUID,
	name string,
	passengerID kernel.UUID,
	recurrenceRule string,
	effectiveRange kernel.TimeWindow,
	exclusionDates []time.Time,
	journeyTemplate standingorder.JourneyTemplate,
) (CreateStandingOrderCommand, error) {
	orderCommand := CreateStandingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setName(name),
		orderCommand.setPassengerID(passengerID),
		orderCommand.setRecurrenceRule(recurrenceRule),
		orderCommand.setEffectiveRange(effectiveRange),
		orderCommand.setJourneyTemplate(journeyTemplate),
	); err != nil {
		return CreateStandingOrderCommand{}, err
	}

	orderCommand.exclusionDates = exclusionDates

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateStandingOrderCommandIsNotConstructed if validation fails.
func (c CreateStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateStandingOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the standing order.
func (c CreateStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the standing order's display label.
func (c CreateStandingOrderCommand) Name() string {
	return c.name
}

// PassengerID returns the passenger every generated journey serves.
func (c CreateStandingOrderCommand) PassengerID() kernel.UUID {
	return c.passengerID
}

// RecurrenceRule returns the RFC 5545 RRULE string.
func (c CreateStandingOrderCommand) RecurrenceRule() string {
	return c.recurrenceRule
}

// EffectiveRange returns the window occurrences are generated within.
func (c CreateStandingOrderCommand) EffectiveRange() kernel.TimeWindow {
	return c.effectiveRange
}

// ExclusionDates returns the calendar days skipped during generation.
func (c CreateStandingOrderCommand) ExclusionDates() []time.Time {
	return c.exclusionDates
}

// JourneyTemplate returns the blueprint expanded per occurrence.
func (c CreateStandingOrderCommand) JourneyTemplate() standingorder.JourneyTemplate {
	return c.journeyTemplate
}

func (c *CreateStandingOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateStandingOrderCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateStandingOrderCommand) setPassengerID(passengerID kernel.UUID) error {
	if err := passengerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("passengerID", err)
	}

	c.passengerID = passengerID
	return nil
}

func (c *CreateStandingOrderCommand) setRecurrenceRule(recurrenceRule string) error {
	if recurrenceRule == "" {
		return errs.NewValueIsRequiredError("recurrenceRule")
	}

	c.recurrenceRule = recurrenceRule
	return nil
}

func (c *CreateStandingOrderCommand) setEffectiveRange(effectiveRange kernel.TimeWindow) error {
	if err := effectiveRange.Validate(); err != nil {
		return err
	}

	c.effectiveRange = effectiveRange
	return nil
}

func (c *CreateStandingOrderCommand) setJourneyTemplate(template standingorder.JourneyTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}

	c.journeyTemplate = template
	return nil
}
