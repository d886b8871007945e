package leadlag

import (
	"context"
	"errors"
	"fmt"
	"math"

	"leadlag-go/internal/contrast"
	"leadlag-go/internal/metrics"
	"leadlag-go/internal/series"
)

var (
	// ErrEmptyLagGrid reports an attempt to pick a lead-lag from no candidates.
	ErrEmptyLagGrid = errors.New("leadlag: empty lag grid")
	// ErrLengthMismatch reports a contrast vector not aligned with its grid.
	ErrLengthMismatch = errors.New("leadlag: contrast vector and lag grid lengths differ")
	// ErrNoFiniteContrast reports a contrast vector made only of NaN.
	ErrNoFiniteContrast = errors.New("leadlag: no comparable contrast value")
)

// Result bundles a scan with the lag it selected.
type Result struct {
	Estimator string    `json:"estimator"`
	Normalize bool      `json:"normalize"`
	Grid      []float64 `json:"grid"`
	Contrasts []float64 `json:"contrasts"`
	LeadLag   float64   `json:"lead_lag"`
}

// Estimate returns the grid entry with the largest contrast. The first entry wins on ties.
func Estimate(grid, contrasts []float64) (float64, error) {
	if len(grid) == 0 {
		return 0, ErrEmptyLagGrid
	}
	if len(contrasts) != len(grid) {
		return 0, fmt.Errorf("%w: %d contrasts for %d lags", ErrLengthMismatch, len(contrasts), len(grid))
	}
	best := -1
	for i, c := range contrasts {
		if math.IsNaN(c) {
			continue
		}
		if best < 0 || c > contrasts[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, ErrNoFiniteContrast
	}
	return grid[best], nil
}

// Run scans grid with est and selects the lead-lag.
func (s *Scanner) Run(ctx context.Context, x, y series.Series, grid []float64, est contrast.Estimator, normalize bool) (Result, error) {
	contrasts, err := s.Scan(ctx, x, y, grid, est, normalize)
	if err != nil {
		return Result{}, err
	}
	lag, err := Estimate(grid, contrasts)
	if err != nil {
		return Result{}, err
	}
	metrics.LeadLag.Set(lag)
	s.log.Info().Str("estimator", est.Name()).Int("lags", len(grid)).Float64("lead_lag", lag).Msg("lead-lag estimated")
	return Result{
		Estimator: est.Name(),
		Normalize: normalize,
		Grid:      grid,
		Contrasts: contrasts,
		LeadLag:   lag,
	}, nil
}
