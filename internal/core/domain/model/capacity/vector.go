package capacity

import (
	"errors"
	"fmt"

	"nemt/internal/pkg/errs"
)

var (
	// ErrCapacityUnderflow indicates that applying a delta would drive some
	// dimension of a capacity vector below zero, e.g. unloading a wheelchair
	// passenger who was never loaded.
	ErrCapacityUnderflow = errors.New("capacity underflow")

	// ErrCapacityImbalance indicates that a trip's stop deltas do not conserve
	// capacity: the fold either underflows mid-sequence or does not return to
	// the zero vector after the final stop.
	ErrCapacityImbalance = errors.New("capacity imbalance")
)

// Vector is a sparse mapping from space type to an integer count.
// A requirement vector is non-negative in every dimension; a delta vector is
// signed. Missing dimensions are treated as zero.
//
// Vector is a map type and therefore not safe for concurrent mutation; callers
// copy via Clone before sharing.
type Vector map[SpaceType]int

// NewRequirements creates a non-negative requirement vector.
// Returns an error if any count is negative or any key is empty.
// Zero-count dimensions are dropped so that equal requirements always compare equal.
func NewRequirements(counts map[SpaceType]int) (Vector, error) {
	v := make(Vector, len(counts))
	for spaceType, count := range counts {
		if err := spaceType.Validate(); err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"capacity requirements",
				fmt.Errorf("%s count %d is negative", spaceType.Name(), count),
			)
		}
		if count != 0 {
			v[spaceType] = count
		}
	}
	return v, nil
}

// NewDelta creates a signed delta vector describing the capacity change at a stop.
// Returns an error if any key is empty. Zero-count dimensions are dropped.
func NewDelta(counts map[SpaceType]int) (Vector, error) {
	v := make(Vector, len(counts))
	for spaceType, count := range counts {
		if err := spaceType.Validate(); err != nil {
			return nil, err
		}
		if count != 0 {
			v[spaceType] = count
		}
	}
	return v, nil
}

// Zero returns the empty vector.
func Zero() Vector {
	return Vector{}
}

// Get returns the count for a dimension, zero when the dimension is absent.
func (v Vector) Get(spaceType SpaceType) int {
	return v[spaceType]
}

// IsZero reports whether every dimension of the vector is zero.
func (v Vector) IsZero() bool {
	for _, count := range v {
		if count != 0 {
			return false
		}
	}
	return true
}

// IsEqual compares two vectors per dimension with sparse-map semantics:
// a dimension missing on one side equals zero on the other.
func (v Vector) IsEqual(other Vector) bool {
	for spaceType, count := range v {
		if other.Get(spaceType) != count {
			return false
		}
	}
	for spaceType, count := range other {
		if v.Get(spaceType) != count {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for spaceType, count := range v {
		out[spaceType] = count
	}
	return out
}

// Negate returns the dimension-wise negation of the vector.
// The dropoff delta of a stop sequence is typically the negation of its pickup delta.
func (v Vector) Negate() Vector {
	out := make(Vector, len(v))
	for spaceType, count := range v {
		out[spaceType] = -count
	}
	return out
}

// ApplyDelta returns a new vector with the delta added per dimension.
// Fails with ErrCapacityUnderflow if any resulting dimension is negative;
// the receiver is never mutated.
func (v Vector) ApplyDelta(delta Vector) (Vector, error) {
	out := v.Clone()
	for spaceType, count := range delta {
		next := out.Get(spaceType) + count
		if next < 0 {
			return nil, fmt.Errorf("%w: %s would drop to %d", ErrCapacityUnderflow, spaceType.Name(), next)
		}
		if next == 0 {
			delete(out, spaceType)
			continue
		}
		out[spaceType] = next
	}
	return out, nil
}

// Fits reports whether the vector fits within the given capacity profile,
// i.e. no dimension of v exceeds the profile's count for that dimension.
// Used to test a trip's requirements against a candidate vehicle.
func (v Vector) Fits(profile Vector) bool {
	for spaceType, count := range v {
		if count > profile.Get(spaceType) {
			return false
		}
	}
	return true
}

// ValidateSequence verifies the conservation rule for an ordered list of stop
// deltas: folding ApplyDelta from the zero vector must never underflow and must
// end at the zero vector. Both failure modes are reported as ErrCapacityImbalance;
// a mid-sequence underflow additionally wraps ErrCapacityUnderflow.
func ValidateSequence(deltas []Vector) error {
	running := Zero()

	for i, delta := range deltas {
		next, err := running.ApplyDelta(delta)
		if err != nil {
			return fmt.Errorf("%w: stop %d: %w", ErrCapacityImbalance, i, err)
		}
		running = next
	}

	if !running.IsZero() {
		return fmt.Errorf("%w: %d occupants remain after final stop", ErrCapacityImbalance, running.total())
	}

	return nil
}

// total sums all dimensions. Only meaningful for non-negative vectors.
func (v Vector) total() int {
	sum := 0
	for _, count := range v {
		sum += count
	}
	return sum
}
