package standingorder

import (
	"errors"
	"fmt"
	"time"

	"nemt/internal/core/domain/model/kernel"
	"nemt/internal/pkg/errs"
)

var (
	// ErrStandingOrderIsNotConstructed is returned when a StandingOrder was
	// not created through the NewStandingOrder or RestoreStandingOrder
	// factory methods.
	ErrStandingOrderIsNotConstructed = errors.New(
		"StandingOrder must be created via NewStandingOrder or RestoreStandingOrder constructor")

	// ErrWatermarkNotAdvancing is returned when the generation watermark is
	// moved backwards or onto itself.
	ErrWatermarkNotAdvancing = errors.New("generation watermark must advance")
)

// StandingOrder is the aggregate root for a recurring transportation need:
// "take Jane to dialysis every Monday, Wednesday, and Friday at 9am".
//
// The recurrence rule uses RFC 5545 RRULE syntax, anchored at the effective
// date range's start. The journey template is the blueprint expanded into a
// concrete journey for every occurrence; the lastGeneratedUpTo watermark
// records how far expansion has progressed.
type StandingOrder struct {
	// id is the unique identifier for the standing order
	id kernel.UUID

	// name is a display label, e.g. "Jane's dialysis runs"
	name string

	// passengerID is the passenger every generated journey serves
	passengerID kernel.UUID

	// status gates generation; only Active orders generate
	status Status

	// recurrenceRule is the RFC 5545 RRULE string, e.g.
	// "FREQ=WEEKLY;BYDAY=MO,WE,FR"
	recurrenceRule string

	// exclusionDates are calendar days skipped during generation
	exclusionDates []time.Time

	// effectiveRange bounds the order's life; occurrences outside it are
	// never generated
	effectiveRange kernel.TimeWindow

	// journeyTemplate is the blueprint expanded per occurrence
	journeyTemplate JourneyTemplate

	// lastGeneratedUpTo is the generation watermark; nil before the first run
	lastGeneratedUpTo *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewStandingOrder creates a new StandingOrder in Active status with no
// generation watermark.
//
// Returns a joined validation error listing every invalid parameter.
func NewStandingOrder(
	id kernel.UUID,
	name string,
	passengerID kernel.UUID,
	recurrenceRule string,
	effectiveRange kernel.TimeWindow,
	exclusionDates []time.Time,
	journeyTemplate JourneyTemplate,
) (*StandingOrder, error) {
	order := &StandingOrder{
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setName(name),
		order.setPassengerID(passengerID),
		order.setRecurrenceRule(recurrenceRule),
		order.setEffectiveRange(effectiveRange),
		order.setJourneyTemplate(journeyTemplate),
	); err != nil {
		return nil, err
	}

	order.exclusionDates = normalizeDates(exclusionDates)
	return order, nil
}

// RestoreStandingOrder reconstructs a StandingOrder from persistence with all
// fields, including status and the generation watermark. Used by
// repositories; not for creating new orders.
func RestoreStandingOrder(
	id kernel.UUID,
	name string,
	passengerID kernel.UUID,
	status Status,
	recurrenceRule string,
	effectiveRange kernel.TimeWindow,
	exclusionDates []time.Time,
	journeyTemplate JourneyTemplate,
	lastGeneratedUpTo *time.Time,
) (*StandingOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order, err := NewStandingOrder(id, name, passengerID, recurrenceRule, effectiveRange, exclusionDates, journeyTemplate)
	if err != nil {
		return nil, err
	}

	order.status = status
	if lastGeneratedUpTo != nil {
		watermark := lastGeneratedUpTo.UTC()
		order.lastGeneratedUpTo = &watermark
	}
	return order, nil
}

// Validate ensures the StandingOrder instance was properly constructed
// through a factory method.
func (o *StandingOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrStandingOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two standing orders by their unique identifiers.
func (o *StandingOrder) IsEqual(other *StandingOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the standing order's unique identifier.
func (o *StandingOrder) ID() kernel.UUID {
	return o.id
}

// Name returns the standing order's display label.
func (o *StandingOrder) Name() string {
	return o.name
}

// Passenger returns the passenger every generated journey serves.
func (o *StandingOrder) Passenger() kernel.UUID {
	return o.passengerID
}

// Status returns the current status of the standing order.
func (o *StandingOrder) Status() Status {
	return o.status
}

// RecurrenceRule returns the RFC 5545 RRULE string.
func (o *StandingOrder) RecurrenceRule() string {
	return o.recurrenceRule
}

// ExclusionDates returns the calendar days skipped during generation.
func (o *StandingOrder) ExclusionDates() []time.Time {
	return o.exclusionDates
}

// AddExclusionDate marks a calendar day as skipped. Adding a date the order
// already excludes is a no-op.
func (o *StandingOrder) AddExclusionDate(date time.Time) {
	day := truncateToDay(date)
	if o.IsExcluded(day) {
		return
	}
	o.exclusionDates = append(o.exclusionDates, day)
}

// IsExcluded reports whether the calendar day of the given time is excluded
// from generation.
func (o *StandingOrder) IsExcluded(date time.Time) bool {
	day := truncateToDay(date)
	for _, excluded := range o.exclusionDates {
		if excluded.Equal(day) {
			return true
		}
	}
	return false
}

// EffectiveRange returns the date range the order is in force.
func (o *StandingOrder) EffectiveRange() kernel.TimeWindow {
	return o.effectiveRange
}

// JourneyTemplate returns the blueprint expanded per occurrence.
func (o *StandingOrder) JourneyTemplate() JourneyTemplate {
	return o.journeyTemplate
}

// LastGeneratedUpTo returns the generation watermark, or nil before the
// first generation run.
func (o *StandingOrder) LastGeneratedUpTo() *time.Time {
	return o.lastGeneratedUpTo
}

// MarkGeneratedThrough advances the generation watermark to the last
// occurrence processed.
//
// Returns ErrWatermarkNotAdvancing if the new watermark does not move
// forward; the generator never re-processes occurrences.
func (o *StandingOrder) MarkGeneratedThrough(occurrence time.Time) error {
	if occurrence.IsZero() {
		return errs.NewValueIsRequiredError("occurrence")
	}
	watermark := occurrence.UTC()
	if o.lastGeneratedUpTo != nil && !watermark.After(*o.lastGeneratedUpTo) {
		return fmt.Errorf("%w: %s is not after %s",
			ErrWatermarkNotAdvancing, watermark, *o.lastGeneratedUpTo)
	}
	o.lastGeneratedUpTo = &watermark
	return nil
}

// Pause suspends generation. The watermark is kept so a resumed order
// continues where it left off.
func (o *StandingOrder) Pause() error {
	newStatus, err := o.status.Pause()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Resume reactivates a paused order.
func (o *StandingOrder) Resume() error {
	newStatus, err := o.status.Resume()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// End permanently closes the order.
func (o *StandingOrder) End() error {
	newStatus, err := o.status.End()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the standing order's unique identifier.
// This is a private method used only during construction.
func (o *StandingOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setName validates and sets the display label.
func (o *StandingOrder) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	o.name = name
	return nil
}

// setPassengerID validates and sets the passenger reference.
func (o *StandingOrder) setPassengerID(passengerID kernel.UUID) error {
	if err := passengerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("passengerID", err)
	}
	o.passengerID = passengerID
	return nil
}

// setRecurrenceRule sets the RRULE string. Parseability is the generator's
// concern; an unparseable rule fails at generation time, not at creation.
func (o *StandingOrder) setRecurrenceRule(rule string) error {
	if rule == "" {
		return errs.NewValueIsRequiredError("recurrenceRule")
	}
	o.recurrenceRule = rule
	return nil
}

// setEffectiveRange validates and sets the in-force date range. The start
// bound is mandatory: the recurrence rule is anchored at it. The end bound
// may stay open for orders without a known end date.
func (o *StandingOrder) setEffectiveRange(effectiveRange kernel.TimeWindow) error {
	if err := effectiveRange.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("effectiveRange", err)
	}
	if effectiveRange.Earliest().IsZero() {
		return errs.NewValueIsRequiredError("effectiveRange start")
	}
	o.effectiveRange = effectiveRange
	return nil
}

// setJourneyTemplate validates and sets the per-occurrence blueprint.
func (o *StandingOrder) setJourneyTemplate(template JourneyTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}
	o.journeyTemplate = template
	return nil
}

// normalizeDates truncates every date to its UTC calendar day and drops
// duplicates, keeping exclusion matching insensitive to the time of day.
func normalizeDates(dates []time.Time) []time.Time {
	normalized := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		day := truncateToDay(date)
		duplicate := false
		for _, existing := range normalized {
			if existing.Equal(day) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			normalized = append(normalized, day)
		}
	}
	return normalized
}

// truncateToDay drops the time-of-day component in UTC.
func truncateToDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
