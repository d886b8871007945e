// Package series holds the asynchronously sampled price paths fed to the contrast estimators.
package series

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShapeMismatch reports a series whose values and timestamps differ in length.
	ErrShapeMismatch = errors.New("series: values and timestamps length mismatch")
	// ErrUnsortedTimestamps reports timestamps that are not strictly increasing.
	ErrUnsortedTimestamps = errors.New("series: timestamps not strictly increasing")
	// ErrDegenerateSeries reports a series too short to derive a single increment.
	ErrDegenerateSeries = errors.New("series: fewer than 2 observations")
	// ErrNonFiniteValue reports a NaN or infinite observation.
	ErrNonFiniteValue = errors.New("series: non-finite value")
)

// Series is one asset's observations, value-aligned by index to strictly increasing timestamps.
// Callers own the slices; nothing in this module writes to them.
type Series struct {
	Timestamps []float64
	Values     []float64
}

// Increment is the value change over one sampling interval [Start, End).
type Increment struct {
	Start float64
	End   float64
	Delta float64
}

// New builds a Series and validates it.
func New(values, timestamps []float64) (Series, error) {
	s := Series{Timestamps: timestamps, Values: values}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Timestamps) }

// Validate checks the shape and ordering invariants the estimators rely on.
func (s Series) Validate() error {
	if len(s.Values) != len(s.Timestamps) {
		return fmt.Errorf("%w: %d values, %d timestamps", ErrShapeMismatch, len(s.Values), len(s.Timestamps))
	}
	if len(s.Timestamps) < 2 {
		return fmt.Errorf("%w: got %d", ErrDegenerateSeries, len(s.Timestamps))
	}
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFiniteValue, i)
		}
	}
	for i := 1; i < len(s.Timestamps); i++ {
		// negated so NaN timestamps are rejected too
		if !(s.Timestamps[i] > s.Timestamps[i-1]) {
			return fmt.Errorf("%w at index %d (%g after %g)", ErrUnsortedTimestamps, i, s.Timestamps[i], s.Timestamps[i-1])
		}
	}
	return nil
}

// Increments derives the n-1 increments of the series in time order.
func (s Series) Increments() []Increment {
	if len(s.Timestamps) < 2 {
		return nil
	}
	out := make([]Increment, len(s.Timestamps)-1)
	for i := range out {
		out[i] = Increment{
			Start: s.Timestamps[i],
			End:   s.Timestamps[i+1],
			Delta: s.Values[i+1] - s.Values[i],
		}
	}
	return out
}

// QuadraticVariation returns the realized quadratic variation, the sum of squared increments.
func (s Series) QuadraticVariation() float64 {
	var qv float64
	for i := 1; i < len(s.Values); i++ {
		d := s.Values[i] - s.Values[i-1]
		qv += d * d
	}
	return qv
}

// Shift returns a copy of s with every timestamp translated by d.
func Shift(s Series, d float64) Series {
	ts := make([]float64, len(s.Timestamps))
	for i, t := range s.Timestamps {
		ts[i] = t + d
	}
	vals := make([]float64, len(s.Values))
	copy(vals, s.Values)
	return Series{Timestamps: ts, Values: vals}
}
