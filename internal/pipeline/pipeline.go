// Package pipeline wires a data source, the consistency check, the production lag scan and the
// report sink into one run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"leadlag-go/internal/config"
	"leadlag-go/internal/contrast"
	"leadlag-go/internal/leadlag"
	"leadlag-go/internal/report"
	"leadlag-go/internal/source"
)

// Pipeline runs one lead-lag estimation as configured.
type Pipeline struct {
	cfg      *config.Config
	log      zerolog.Logger
	provider source.Provider
	scanner  *leadlag.Scanner
	est      contrast.Estimator
	ledger   *report.Ledger
	sinks    report.Multi
	closer   func() error
}

// New resolves the provider, estimator and report sink named in cfg.
func New(cfg *config.Config, log zerolog.Logger, opts ...source.Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	provider, err := source.New(cfg.Data, log, opts...)
	if err != nil {
		return nil, err
	}
	est, err := contrast.Build(cfg.Estimation.Estimator)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		log:      log,
		provider: provider,
		scanner:  leadlag.NewScanner(leadlag.WithWorkers(cfg.Estimation.Workers), leadlag.WithLogger(log)),
		est:      est,
		ledger:   report.NewLedger(1),
		closer:   func() error { return nil },
	}
	p.sinks = report.Multi{p.ledger}
	if cfg.Report.Path != "" {
		rec, err := report.NewJSONLRecorder(cfg.Report.Path)
		if err != nil {
			return nil, fmt.Errorf("open report: %w", err)
		}
		p.sinks = append(p.sinks, rec)
		p.closer = rec.Close
	}
	return p, nil
}

// WithRecorder adds a report sink next to the configured ones.
func (p *Pipeline) WithRecorder(rec report.Recorder) *Pipeline {
	p.sinks = append(p.sinks, rec)
	return p
}

// History returns every result this pipeline has produced, oldest first.
func (p *Pipeline) History() []leadlag.Result { return p.ledger.Snapshot() }

// Close releases the report file, if any.
func (p *Pipeline) Close() error { return p.closer() }

// Load fetches the dataset from the configured provider.
func (p *Pipeline) Load(ctx context.Context) (source.Dataset, error) {
	p.log.Info().Str("provider", p.provider.Name()).Msg("loading data")
	ds, err := p.provider.Load(ctx)
	if err != nil {
		return source.Dataset{}, fmt.Errorf("load %s data: %w", p.provider.Name(), err)
	}
	p.log.Info().
		Str("x", ds.Symbols[0]).Int("nx", ds.X.Len()).
		Str("y", ds.Symbols[1]).Int("ny", ds.Y.Len()).
		Int("assumed_lag", ds.AssumedLag).
		Msg("data loaded")
	return ds, nil
}

// Check verifies the configured estimator against the reference on the diagnostic grid.
func (p *Pipeline) Check(ctx context.Context, ds source.Dataset) error {
	grid := p.cfg.Estimation.CheckGrid
	if len(grid) == 0 {
		grid = leadlag.DefaultCheckGrid
	}
	p.log.Info().Floats64("grid", grid).Msg("starting consistency check")
	return p.scanner.Check(ctx, ds.X, ds.Y, grid, p.est, p.cfg.Estimation.Normalize, p.cfg.Estimation.CheckTolerance)
}

// Run loads data, checks the estimator unless disabled, scans the production grid and records
// the result. A failed check stops the run.
func (p *Pipeline) Run(ctx context.Context) (leadlag.Result, error) {
	ds, err := p.Load(ctx)
	if err != nil {
		return leadlag.Result{}, err
	}
	grid, err := leadlag.Grid(ds.AssumedLag)
	if err != nil {
		return leadlag.Result{}, err
	}
	if p.cfg.Estimation.SkipCheck {
		p.log.Warn().Msg("consistency check skipped")
	} else if err := p.Check(ctx, ds); err != nil {
		return leadlag.Result{}, err
	}

	p.log.Info().Str("estimator", p.est.Name()).Int("lags", len(grid)).Msg("scanning lag grid")
	res, err := p.scanner.Run(ctx, ds.X, ds.Y, grid, p.est, p.cfg.Estimation.Normalize)
	if err != nil {
		return leadlag.Result{}, err
	}
	if err := p.sinks.Record(res); err != nil {
		return res, fmt.Errorf("record result: %w", err)
	}
	return res, nil
}
