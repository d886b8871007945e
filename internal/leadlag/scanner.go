// Package leadlag scans contrast estimators over a lag grid and picks the lead-lag that
// maximizes the contrast.
package leadlag

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"leadlag-go/internal/contrast"
	"leadlag-go/internal/metrics"
	"leadlag-go/internal/series"
)

// Scanner evaluates an estimator at every lag of a grid using a bounded pool of goroutines.
type Scanner struct {
	workers   int
	chunkSize int
	log       zerolog.Logger
}

// Option configures Scanner construction parameters.
type Option func(*Scanner)

// WithWorkers caps the number of lags evaluated concurrently.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithChunkSize fixes how many consecutive lags one goroutine evaluates.
func WithChunkSize(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithLogger attaches a logger for scan summaries.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

// NewScanner builds a Scanner; by default it uses one worker per CPU and stays silent.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		workers: runtime.NumCPU(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	return s
}

// Scan returns est's contrast at every lag of grid, in grid order. An empty grid yields an empty
// vector. Cancelling ctx aborts the whole scan.
func (s *Scanner) Scan(ctx context.Context, x, y series.Series, grid []float64, est contrast.Estimator, normalize bool) ([]float64, error) {
	if err := x.Validate(); err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	if err := y.Validate(); err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	out := make([]float64, len(grid))
	if len(grid) == 0 {
		return out, nil
	}

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	chunk := s.chunkFor(len(grid))
	for lo := 0; lo < len(grid); lo += chunk {
		from, to := lo, min(lo+chunk, len(grid))
		g.Go(func() error {
			// each goroutine owns out[from:to]
			for i := from; i < to; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				c, err := est.Contrast(x, y, grid[i], normalize)
				if err != nil {
					return fmt.Errorf("lag %g: %w", grid[i], err)
				}
				out[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	metrics.ContrastEvaluations.WithLabelValues(est.Name()).Add(float64(len(grid)))
	metrics.ScanDuration.WithLabelValues(est.Name()).Observe(elapsed.Seconds())
	s.log.Debug().
		Str("estimator", est.Name()).
		Int("lags", len(grid)).
		Int("nx", x.Len()).
		Int("ny", y.Len()).
		Dur("elapsed", elapsed).
		Msg("lag scan complete")
	return out, nil
}

func (s *Scanner) chunkFor(n int) int {
	if s.chunkSize > 0 {
		return s.chunkSize
	}
	// a few chunks per worker keeps the pool busy when lags cost unevenly
	chunk := (n + 4*s.workers - 1) / (4 * s.workers)
	return max(chunk, 1)
}

// ScanLags is the flat-slice entry point over a default Scanner.
func ScanLags(ctx context.Context, xValues, xTimestamps, yValues, yTimestamps, grid []float64, normalize bool, estimator string) ([]float64, error) {
	est, err := contrast.Build(estimator)
	if err != nil {
		return nil, err
	}
	x := series.Series{Timestamps: xTimestamps, Values: xValues}
	y := series.Series{Timestamps: yTimestamps, Values: yValues}
	return NewScanner().Scan(ctx, x, y, grid, est, normalize)
}
