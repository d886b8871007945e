package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"leadlag-go/internal/config"
	"leadlag-go/internal/metrics"
	"leadlag-go/internal/pipeline"
	"leadlag-go/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and builds the pipeline. The returned cleanup stops
// the metrics server and closes the report.
func setup() (context.Context, *pipeline.Pipeline, zerolog.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, zerolog.Nop(), nil, err
	}
	if providerFlag != "" {
		cfg.Data.Provider = providerFlag
	}
	if estimatorFlag != "" {
		cfg.Estimation.Estimator = estimatorFlag
	}
	if skipCheck {
		cfg.Estimation.SkipCheck = true
	}
	log := util.NewLogger(cfg.App.LogLevel).With().Str("app", cfg.App.Name).Logger()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return nil, nil, log, nil, err
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cleanups := []func(){cancel, func() { _ = p.Close() }}
	if cfg.App.MetricsAddr != "" {
		srv := metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
		cleanups = append(cleanups, func() { _ = srv.Close() })
	}
	return ctx, p, log, func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}, nil
}
