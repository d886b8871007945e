// Package source supplies the pair of series a lead-lag estimate runs on.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"leadlag-go/internal/config"
	"leadlag-go/internal/series"
)

const (
	// ProviderSynthetic simulates a Bachelier path and a delayed copy with a known lead-lag.
	ProviderSynthetic = "synthetic"
	// ProviderBinance records live trades for two symbols from Binance public websockets.
	ProviderBinance = "binance"
	// ProviderCSV reads two timestamp,value files.
	ProviderCSV = "csv"
)

// Dataset is the input of one estimation run. AssumedLag is the lead-lag magnitude used to size the
// search grid.
type Dataset struct {
	X          series.Series
	Y          series.Series
	Symbols    [2]string
	AssumedLag int
}

// Provider yields a Dataset.
type Provider interface {
	Load(ctx context.Context) (Dataset, error)
	Name() string
}

// New returns the provider selected by cfg.Provider.
func New(cfg config.Data, log zerolog.Logger, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderSynthetic:
		return NewSynthetic(cfg.Synthetic, cfg.AssumedLeadLag), nil
	case ProviderBinance:
		return NewBinance(cfg.Binance, cfg.AssumedLeadLag, log, opts...), nil
	case ProviderCSV:
		return NewCSV(cfg.CSV, cfg.AssumedLeadLag), nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.Provider)
	}
}

func (d Dataset) validate() error {
	if err := d.X.Validate(); err != nil {
		return fmt.Errorf("%s: %w", d.Symbols[0], err)
	}
	if err := d.Y.Validate(); err != nil {
		return fmt.Errorf("%s: %w", d.Symbols[1], err)
	}
	return nil
}
