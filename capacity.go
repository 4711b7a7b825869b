package bufvec

import "math"

// minGrowCapacity seeds the doubling sequence when growing an empty buffer.
const minGrowCapacity = 2

// PlanCapacity returns the capacity a buffer must be reallocated to in order
// to hold required elements, given that it currently holds current elements.
//
// If current is already sufficient, PlanCapacity returns (current, false) and
// the existing allocation should be reused as-is, even if it is larger than
// needed. Capacity never shrinks.
//
// Otherwise the result is the first value of the sequence current, 2*current,
// 4*current, ... (seeded at 2 when current is 0) that is at least required.
// If doubling would overflow int, the result is required itself.
//
//	PlanCapacity(0, 1) // 2, true
//	PlanCapacity(2, 3) // 4, true
//	PlanCapacity(4, 4) // 4, false
func PlanCapacity(current, required int) (int, bool) {
	if current >= required {
		return current, false
	}

	capacity := current
	if capacity <= 0 {
		capacity = minGrowCapacity
	}

	for capacity < required {
		if capacity > math.MaxInt/2 {
			// The next doubling would overflow.
			return required, true
		}
		capacity *= 2
	}

	return capacity, true
}
