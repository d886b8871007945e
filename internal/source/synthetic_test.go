package source

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadlag-go/internal/config"
	"leadlag-go/internal/contrast"
	"leadlag-go/internal/leadlag"
)

func TestSyntheticIsDeterministic(t *testing.T) {
	cfg := config.Synthetic{Steps: 500, LeadLag: 3, Sigma: 1, KeepProbX: 0.4, KeepProbY: 0.6, Seed: 42}
	a, err := NewSynthetic(cfg, 0).Load(context.Background())
	require.NoError(t, err)
	b, err := NewSynthetic(cfg, 0).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 3, a.AssumedLag)
	assert.Equal(t, 0.0, a.X.Timestamps[0])
	assert.Equal(t, 499.0, a.X.Timestamps[a.X.Len()-1])
	assert.Less(t, a.X.Len(), 500)
}

func TestSyntheticDefaults(t *testing.T) {
	s := NewSynthetic(config.Synthetic{}, 20)
	assert.Equal(t, 10_000, s.steps)
	assert.Equal(t, 0.3, s.keepX)
	assert.Equal(t, 20, s.assumedLag, "zero lead-lag keeps the configured grid size")
}

func TestSyntheticLeadLagIsRecovered(t *testing.T) {
	for _, lag := range []int{5, -4} {
		cfg := config.Synthetic{Steps: 3000, LeadLag: lag, Sigma: 1, KeepProbX: 0.3, KeepProbY: 0.3, Seed: 7}
		ds, err := NewSynthetic(cfg, 0).Load(context.Background())
		require.NoError(t, err)

		grid, err := leadlag.Grid(ds.AssumedLag)
		require.NoError(t, err)
		res, err := leadlag.NewScanner().Run(context.Background(), ds.X, ds.Y, grid, contrast.Sweep{}, true)
		require.NoError(t, err)
		assert.Equal(t, float64(lag), res.LeadLag)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	for name, want := range map[string]string{"": ProviderSynthetic, "Synthetic": ProviderSynthetic, "binance": ProviderBinance, "csv": ProviderCSV} {
		p, err := New(config.Data{Provider: name}, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, want, p.Name())
	}
	_, err := New(config.Data{Provider: "bloomberg"}, zerolog.Nop())
	assert.Error(t, err)
}
