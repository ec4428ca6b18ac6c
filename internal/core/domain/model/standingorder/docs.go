// Package standingorder contains the StandingOrder aggregate: a recurring
// transportation need expressed as an RFC 5545 recurrence rule plus a journey
// template, expanded into concrete journeys and trips by the generation
// service.
//
// A standing order carries an effective date range, a list of exclusion dates
// on which no journey may be generated, and a lastGeneratedUpTo watermark that
// makes generation resumable and idempotent: the generator only processes
// occurrences after the watermark and advances it past what it produced.
//
// Only Active orders generate journeys. Paused orders keep their watermark and
// can resume; Ended orders are terminal.
package standingorder
