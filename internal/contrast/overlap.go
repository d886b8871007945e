package contrast

import "math"

// Overlap returns the length shared by [min1, max1) and [min2, max2), or 0 when the intervals are
// disjoint or only touch. An interval with min > max is empty.
func Overlap(min1, max1, min2, max2 float64) float64 {
	return math.Max(0, math.Min(max1, max2)-math.Max(min1, min2))
}
