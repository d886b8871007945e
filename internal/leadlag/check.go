package leadlag

import (
	"context"
	"errors"
	"fmt"
	"math"

	"leadlag-go/internal/contrast"
	"leadlag-go/internal/series"
)

// ErrInconsistent reports a candidate estimator that disagrees with the reference.
var ErrInconsistent = errors.New("leadlag: estimator disagrees with reference")

// DefaultTolerance is the relative tolerance Check applies when given zero.
const DefaultTolerance = 1e-9

// DefaultCheckGrid is a deliberately unordered diagnostic grid.
var DefaultCheckGrid = []float64{-20, 40, 0, 10, 50, 32, 31, 83}

// Check compares candidate against the reference estimator over grid and returns ErrInconsistent
// at the first lag where they differ beyond tol. Values within tol of zero compare absolutely.
func (s *Scanner) Check(ctx context.Context, x, y series.Series, grid []float64, candidate contrast.Estimator, normalize bool, tol float64) error {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	want, err := s.Scan(ctx, x, y, grid, contrast.Reference{}, normalize)
	if err != nil {
		return fmt.Errorf("reference scan: %w", err)
	}
	got, err := s.Scan(ctx, x, y, grid, candidate, normalize)
	if err != nil {
		return fmt.Errorf("%s scan: %w", candidate.Name(), err)
	}
	for i, lag := range grid {
		if !agree(want[i], got[i], tol) {
			return fmt.Errorf("%w: %s at lag %g: reference %.17g, got %.17g", ErrInconsistent, candidate.Name(), lag, want[i], got[i])
		}
	}
	s.log.Info().Str("estimator", candidate.Name()).Int("lags", len(grid)).Msg("consistency check passed")
	return nil
}

func agree(a, b, tol float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= tol || diff <= tol*math.Max(math.Abs(a), math.Abs(b))
}
