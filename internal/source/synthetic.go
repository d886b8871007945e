package source

import (
	"context"
	"math/rand/v2"

	"leadlag-go/internal/config"
	"leadlag-go/internal/series"
)

// Synthetic draws an arithmetic Brownian motion on the integer grid and observes it twice: X sees
// the path directly, Y sees it lagged by LeadLag steps. Each series keeps every grid point
// independently with its own probability, which makes the sampling asynchronous.
type Synthetic struct {
	steps      int
	leadLag    int
	sigma      float64
	keepX      float64
	keepY      float64
	seed       uint64
	assumedLag int
}

// NewSynthetic builds a generator; invalid knobs fall back to usable defaults.
func NewSynthetic(cfg config.Synthetic, assumedLag int) *Synthetic {
	s := &Synthetic{
		steps:      cfg.Steps,
		leadLag:    cfg.LeadLag,
		sigma:      cfg.Sigma,
		keepX:      cfg.KeepProbX,
		keepY:      cfg.KeepProbY,
		seed:       cfg.Seed,
		assumedLag: assumedLag,
	}
	if s.steps < 2 {
		s.steps = 10_000
	}
	if s.sigma <= 0 {
		s.sigma = 1
	}
	if s.keepX <= 0 || s.keepX > 1 {
		s.keepX = 0.3
	}
	if s.keepY <= 0 || s.keepY > 1 {
		s.keepY = 0.3
	}
	if s.leadLag != 0 {
		s.assumedLag = abs(s.leadLag)
	}
	return s
}

// Name returns the provider identifier.
func (s *Synthetic) Name() string { return ProviderSynthetic }

// Load simulates the pair. The same seed always yields the same dataset.
func (s *Synthetic) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))

	path := make([]float64, s.steps+abs(s.leadLag))
	path[0] = 100
	for i := 1; i < len(path); i++ {
		path[i] = path[i-1] + s.sigma*rng.NormFloat64()
	}

	// y(t) = x(t - leadLag)
	offX, offY := max(s.leadLag, 0), max(-s.leadLag, 0)
	var x, y series.Series
	for t := 0; t < s.steps; t++ {
		edge := t == 0 || t == s.steps-1
		if edge || rng.Float64() < s.keepX {
			x.Timestamps = append(x.Timestamps, float64(t))
			x.Values = append(x.Values, path[t+offX])
		}
		if edge || rng.Float64() < s.keepY {
			y.Timestamps = append(y.Timestamps, float64(t))
			y.Values = append(y.Values, path[t+offY])
		}
	}

	ds := Dataset{X: x, Y: y, Symbols: [2]string{"X", "Y"}, AssumedLag: s.assumedLag}
	return ds, ds.validate()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
