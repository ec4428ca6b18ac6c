package trip

import (
	"fmt"

	"nemt/internal/pkg/errs"
)

// Status represents the administrative lifecycle state of a trip.
// It implements a state machine with defined transitions:
//
//	PendingApproval ──┬──> Approved ──> Scheduled ──> InProgress ──┬──> Completed
//	                  │        │             │                     └──> Incomplete
//	                  └──> Rejected          │
//	                                         └──> Canceled
//	     (Canceled is also reachable from PendingApproval and Approved)
//
// Rejected, Completed, Incomplete, and Canceled are terminal. Cancellation is
// only legal before execution begins; halting a trip mid-execution is modeled
// as Incomplete because partial service may already be billable.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingApproval is the initial status: requested but not yet reviewed.
	PendingApproval

	// Rejected means the request was reviewed and declined. Terminal.
	Rejected

	// Approved means the trip is accepted and waiting to be scheduled.
	Approved

	// Scheduled means the trip has been assigned to a driver and vehicle.
	Scheduled

	// InProgress means execution has begun: the first stop left Pending.
	InProgress

	// Completed means every stop reached a terminal state with at least one
	// completed. Terminal, ready for billing.
	Completed

	// Incomplete means execution halted before all stops finished as planned.
	// Terminal.
	Incomplete

	// Canceled means the trip was called off before execution began. Terminal.
	Canceled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		PendingApproval: "PendingApproval",
		Rejected:        "Rejected",
		Approved:        "Approved",
		Scheduled:       "Scheduled",
		InProgress:      "InProgress",
		Completed:       "Completed",
		Incomplete:      "Incomplete",
		Canceled:        "Canceled",
	}
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"trip status is invalid",
			fmt.Errorf("%d is not a valid trip status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the status is one of the terminal outcomes.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Completed || s == Incomplete || s == Canceled
}

// Approve transitions PendingApproval to Approved.
func (s Status) Approve() (Status, error) {
	if s != PendingApproval {
		return 0, tripTransitionError(s, Approved)
	}
	return Approved, nil
}

// Reject transitions PendingApproval to Rejected.
func (s Status) Reject() (Status, error) {
	if s != PendingApproval {
		return 0, tripTransitionError(s, Rejected)
	}
	return Rejected, nil
}

// Schedule transitions Approved to Scheduled.
// The aggregate enforces capacity conservation and constraint consistency
// before performing this transition.
func (s Status) Schedule() (Status, error) {
	if s != Approved {
		return 0, tripTransitionError(s, Scheduled)
	}
	return Scheduled, nil
}

// BeginExecution transitions Scheduled to InProgress.
func (s Status) BeginExecution() (Status, error) {
	if s != Scheduled {
		return 0, tripTransitionError(s, InProgress)
	}
	return InProgress, nil
}

// Complete transitions InProgress to Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, tripTransitionError(s, Completed)
	}
	return Completed, nil
}

// MarkIncomplete transitions InProgress to Incomplete.
func (s Status) MarkIncomplete() (Status, error) {
	if s != InProgress {
		return 0, tripTransitionError(s, Incomplete)
	}
	return Incomplete, nil
}

// Cancel transitions PendingApproval, Approved, or Scheduled to Canceled.
// Cancellation during InProgress is illegal; use MarkIncomplete instead.
func (s Status) Cancel() (Status, error) {
	if s != PendingApproval && s != Approved && s != Scheduled {
		return 0, tripTransitionError(s, Canceled)
	}
	return Canceled, nil
}

// tripTransitionError builds the uniform invalid-transition error for trips.
func tripTransitionError(from, to Status) error {
	return fmt.Errorf("%w: trip cannot move from %s to %s", ErrInvalidTransition, from, to)
}
