// Package trip contains the Trip aggregate: the passenger-facing transportation
// unit, composed of the ordered Stops it exclusively owns.
//
// A Trip moves through an administrative lifecycle (PendingApproval through
// Completed/Incomplete/Canceled) while each of its Stops moves through an
// execution lifecycle (Pending through Completed/NoShow/Canceled). Stop
// transitions are applied through the Trip so that the aggregate keeps the two
// lifecycles consistent: the first dispatched stop begins execution, and trip
// completion demands every stop terminal with at least one completed.
//
// A Trip cannot enter Scheduled until its stop capacity deltas conserve
// capacity (see the capacity package) and its constraints are internally
// consistent (see the constraint package).
package trip
