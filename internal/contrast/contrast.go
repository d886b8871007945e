// Package contrast computes the shifted modified Hayashi-Yoshida contrast between two
// asynchronously sampled series.
package contrast

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"leadlag-go/internal/series"
)

var (
	// ErrZeroNormalization reports a flat series while normalization was requested and the raw
	// covariance is non-zero.
	ErrZeroNormalization = errors.New("contrast: zero quadratic variation with non-zero covariance")
	// ErrNonFiniteLag reports a NaN or infinite lag.
	ErrNonFiniteLag = errors.New("contrast: non-finite lag")
	// ErrUnknownEstimator reports an estimator name Build does not recognise.
	ErrUnknownEstimator = errors.New("contrast: unknown estimator")
	// ErrNonFiniteContrast reports finite inputs whose increments or products overflow float64.
	ErrNonFiniteContrast = errors.New("contrast: non-finite result")
)

const (
	// NameReference identifies the pairwise-enumeration estimator.
	NameReference = "reference"
	// NameSweep identifies the synchronized-sweep estimator.
	NameSweep = "sweep"
)

// Estimator computes the contrast of x against y shifted by lag.
type Estimator interface {
	Contrast(x, y series.Series, lag float64, normalize bool) (float64, error)
	Name() string
}

// Build returns the estimator registered under name. The empty name selects the sweep.
func Build(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSweep, "fast", "optimized":
		return Sweep{}, nil
	case NameReference, "slow":
		return Reference{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEstimator, name)
	}
}

// Estimate is the flat-slice entry point: it builds both series, picks the estimator by name and
// evaluates a single lag.
func Estimate(xValues, xTimestamps, yValues, yTimestamps []float64, lag float64, normalize bool, name string) (float64, error) {
	est, err := Build(name)
	if err != nil {
		return 0, err
	}
	x := series.Series{Timestamps: xTimestamps, Values: xValues}
	y := series.Series{Timestamps: yTimestamps, Values: yValues}
	return est.Contrast(x, y, lag, normalize)
}

func validate(x, y series.Series, lag float64) error {
	if err := x.Validate(); err != nil {
		return fmt.Errorf("x: %w", err)
	}
	if err := y.Validate(); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	if math.IsNaN(lag) || math.IsInf(lag, 0) {
		return fmt.Errorf("%w: %v", ErrNonFiniteLag, lag)
	}
	return nil
}

// finish applies the optional realized-volatility normalization and drops the sign. Overflow
// anywhere along the way is an error, never a NaN or Inf result.
func finish(x, y series.Series, acc float64, normalize bool) (float64, error) {
	if !finite(acc) {
		return 0, fmt.Errorf("%w: covariance %g", ErrNonFiniteContrast, acc)
	}
	if !normalize {
		return math.Abs(acc), nil
	}
	den := math.Sqrt(x.QuadraticVariation()) * math.Sqrt(y.QuadraticVariation())
	if !finite(den) {
		return 0, fmt.Errorf("%w: normalization %g", ErrNonFiniteContrast, den)
	}
	if den == 0 {
		if acc == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: covariance %g", ErrZeroNormalization, acc)
	}
	c := math.Abs(acc / den)
	if !finite(c) {
		return 0, fmt.Errorf("%w: %g / %g", ErrNonFiniteContrast, acc, den)
	}
	return c, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
