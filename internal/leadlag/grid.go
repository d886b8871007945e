package leadlag

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxGridLen bounds the number of lags a single grid may hold.
	MaxGridLen = 1 << 20
	// MaxAssumedLag is the largest assumed lead-lag magnitude Grid accepts.
	MaxAssumedLag = MaxGridLen / 4
)

// ErrGridTooLarge reports an assumed lead-lag whose production grid would exceed MaxGridLen.
var ErrGridTooLarge = errors.New("leadlag: lag grid too large")

// Range returns start, start+step, ... up to but excluding stop. A zero or wrong-signed step, or a
// grid longer than MaxGridLen, gives an empty grid.
func Range(start, stop, step float64) []float64 {
	span := (stop - start) / step
	if !(span > 0) || span > MaxGridLen {
		return []float64{}
	}
	n := int(math.Ceil(span))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Grid is the production search grid for an assumed lead-lag magnitude a: the integers in
// [-2a, 2a).
func Grid(assumedLag int) ([]float64, error) {
	if assumedLag > MaxAssumedLag || assumedLag < -MaxAssumedLag {
		return nil, fmt.Errorf("%w: assumed lead-lag %d exceeds %d", ErrGridTooLarge, assumedLag, MaxAssumedLag)
	}
	if assumedLag < 0 {
		assumedLag = -assumedLag
	}
	return Range(float64(-2*assumedLag), float64(2*assumedLag), 1), nil
}
