package leadlag

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadlag-go/internal/contrast"
	"leadlag-go/internal/series"
)

// skewed returns the sweep's value nudged upward at positive lags.
type skewed struct{}

func (skewed) Name() string { return "skewed" }

func (skewed) Contrast(x, y series.Series, lag float64, normalize bool) (float64, error) {
	c, err := contrast.Sweep{}.Contrast(x, y, lag, normalize)
	if lag > 0 {
		c += 1e-3
	}
	return c, err
}

func checkPair() (series.Series, series.Series) {
	rng := rand.New(rand.NewPCG(31, 32))
	x, y := series.Series{}, series.Series{}
	for ts := 0; ts < 300; ts++ {
		v := rng.NormFloat64()
		if rng.Float64() < 0.6 {
			x.Timestamps = append(x.Timestamps, float64(ts))
			x.Values = append(x.Values, v)
		}
		if rng.Float64() < 0.4 {
			y.Timestamps = append(y.Timestamps, float64(ts)+0.25)
			y.Values = append(y.Values, v)
		}
	}
	return x, y
}

func TestCheckPassesForSweep(t *testing.T) {
	x, y := checkPair()
	s := NewScanner()
	require.NoError(t, s.Check(context.Background(), x, y, DefaultCheckGrid, contrast.Sweep{}, true, 0))
	require.NoError(t, s.Check(context.Background(), x, y, DefaultCheckGrid, contrast.Sweep{}, false, 1e-12))
}

func TestCheckReportsDisagreement(t *testing.T) {
	x, y := checkPair()
	err := NewScanner().Check(context.Background(), x, y, DefaultCheckGrid, skewed{}, true, 0)
	require.ErrorIs(t, err, ErrInconsistent)
	assert.Contains(t, err.Error(), "lag 40")
}

func TestAgree(t *testing.T) {
	assert.True(t, agree(0, 0, 1e-9))
	assert.True(t, agree(1, 1+1e-12, 1e-9))
	assert.True(t, agree(0, 1e-12, 1e-9))
	assert.False(t, agree(1, 1.001, 1e-9))
}
