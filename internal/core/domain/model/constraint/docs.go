// Package constraint implements the driver/vehicle matching rules of the
// transportation model.
//
// Constraints come in three strictness tiers collected in TripConstraints:
// preferences (soft, scoring hints for the optimizer), requirements (the
// assignment must match), and prohibitions (the assignment must not match).
// Evaluate tests a candidate driver and vehicle pair against all three tiers
// and returns the complete violation set so the optimizer can run fallback
// searches without re-evaluating.
package constraint
