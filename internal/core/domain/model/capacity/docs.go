// Package capacity implements the capacity algebra of the transportation model.
//
// A vehicle's occupancy is described by a Vector: a sparse mapping from space
// type (wheelchair, ambulatory, stretcher) to an integer count. Stops carry
// signed delta vectors describing how loading and unloading at that stop changes
// the vehicle's occupancy. The conservation rule is that folding the deltas of a
// trip's stops, in stop order, must never drive any dimension negative and must
// return to the zero vector after the final stop.
package capacity
