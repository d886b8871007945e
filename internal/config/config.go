// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. LEADLAG_ESTIMATION_ESTIMATOR.
const EnvPrefix = "LEADLAG"

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name" split_words:"true"`
	Env         string `yaml:"env" split_words:"true"`
	MetricsAddr string `yaml:"metrics_addr" split_words:"true"`
	LogLevel    string `yaml:"log_level" split_words:"true"`
}

// Synthetic parameterizes the Bachelier path generator.
type Synthetic struct {
	Steps     int     `yaml:"steps" split_words:"true"`
	LeadLag   int     `yaml:"lead_lag" split_words:"true"`
	Sigma     float64 `yaml:"sigma" split_words:"true"`
	KeepProbX float64 `yaml:"keep_prob_x" split_words:"true"`
	KeepProbY float64 `yaml:"keep_prob_y" split_words:"true"`
	Seed      uint64  `yaml:"seed" split_words:"true"`
}

// Binance describes the live trade recorder.
type Binance struct {
	BaseURL      string `yaml:"base_url" split_words:"true"`
	SymbolX      string `yaml:"symbol_x" split_words:"true"`
	SymbolY      string `yaml:"symbol_y" split_words:"true"`
	DurationSecs int    `yaml:"duration_secs" split_words:"true"`
}

// CSV points at two timestamp,value files.
type CSV struct {
	XPath string `yaml:"x_path" split_words:"true"`
	YPath string `yaml:"y_path" split_words:"true"`
}

// Data selects where the two series come from. AssumedLeadLag sizes the production grid when the
// provider cannot infer it.
type Data struct {
	Provider       string    `yaml:"provider" split_words:"true"`
	AssumedLeadLag int       `yaml:"assumed_lead_lag" split_words:"true"`
	Synthetic      Synthetic `yaml:"synthetic" split_words:"true"`
	Binance        Binance   `yaml:"binance" split_words:"true"`
	CSV            CSV       `yaml:"csv" split_words:"true"`
}

// Estimation tunes the contrast scan.
type Estimation struct {
	Estimator      string    `yaml:"estimator" split_words:"true"`
	Normalize      bool      `yaml:"normalize" split_words:"true"`
	Workers        int       `yaml:"workers" split_words:"true"`
	CheckGrid      []float64 `yaml:"check_grid" split_words:"true"`
	CheckTolerance float64   `yaml:"check_tolerance" split_words:"true"`
	SkipCheck      bool      `yaml:"skip_check" split_words:"true"`
}

// Report configures where contrast vectors are written for plotting.
type Report struct {
	Path string `yaml:"path" split_words:"true"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App        App        `yaml:"app" split_words:"true"`
	Data       Data       `yaml:"data" split_words:"true"`
	Estimation Estimation `yaml:"estimation" split_words:"true"`
	Report     Report     `yaml:"report" split_words:"true"`
}

// Default returns the settings used when a key is absent from the file.
func Default() *Config {
	return &Config{
		App: App{Name: "leadlag", Env: "dev", LogLevel: "info"},
		Data: Data{
			Provider:       "synthetic",
			AssumedLeadLag: 20,
			Synthetic: Synthetic{
				Steps:     20_000,
				LeadLag:   10,
				Sigma:     1,
				KeepProbX: 0.3,
				KeepProbY: 0.3,
				Seed:      1,
			},
			Binance: Binance{
				BaseURL:      "wss://stream.binance.com:9443",
				SymbolX:      "BTCUSDT",
				SymbolY:      "ETHUSDT",
				DurationSecs: 300,
			},
		},
		Estimation: Estimation{
			Estimator:      "sweep",
			Normalize:      true,
			CheckGrid:      []float64{-20, 40, 0, 10, 50, 32, 31, 83},
			CheckTolerance: 1e-9,
		},
	}
}

// Load reads a YAML file from disk over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv loads .env when present and overlays LEADLAG_* variables onto cfg, named after the
// field path in upper snake case (LEADLAG_DATA_CSV_X_PATH). Unset variables
// leave the existing value alone.
func ApplyEnv(cfg *Config) error {
	_ = godotenv.Load() // best-effort
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	return nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
