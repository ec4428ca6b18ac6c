// Package services contains stateless domain services that coordinate work
// across aggregates.
//
// The JourneyMaterializer expands a journey template into a concrete journey
// and its trips for one occurrence date. The StandingOrderGenerator drives
// the materializer along a standing order's recurrence rule, honoring the
// exclusion list and the generation watermark. The AssignmentValidator checks
// an optimizer-proposed driver and vehicle pair against a trip's constraints
// and the vehicle's capacity profile before the trip is scheduled.
package services
