// Package config loads billgen configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/worksbill/billgen-go/pkg/billgen"
)

// Config holds all billgen configuration.
type Config struct {
	// Server configures the HTTP service.
	Server ServerConfig `yaml:"server"`
	// Cache configures the parsed-bill cache.
	Cache CacheConfig `yaml:"cache"`
	// Bill configures statutory percentages.
	Bill BillConfig `yaml:"bill"`
	// Batch configures the worker pool.
	Batch BatchConfig `yaml:"batch"`
	// Memory configures the memory monitor.
	Memory MemoryConfig `yaml:"memory"`
	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CacheConfig configures the parsed-bill cache.
type CacheConfig struct {
	MaxEntries      int      `yaml:"max_entries"`
	TTL             Duration `yaml:"ttl"`
	DiskPath        string   `yaml:"disk_path"`
	JanitorInterval Duration `yaml:"janitor_interval"`
}

// BillConfig configures statutory percentages.
type BillConfig struct {
	SecurityDepositPercent float64 `yaml:"security_deposit_percent"`
	IncomeTaxPercent       float64 `yaml:"income_tax_percent"`
	GSTPercent             float64 `yaml:"gst_percent"`
	DeviationLimitPercent  float64 `yaml:"deviation_limit_percent"`
	LDPerDayPercent        float64 `yaml:"ld_per_day_percent"`
	LDCapPercent           float64 `yaml:"ld_cap_percent"`
}

// BatchConfig configures the worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// MemoryConfig configures the memory monitor.
type MemoryConfig struct {
	ThresholdMB    int      `yaml:"threshold_mb"`
	SampleInterval Duration `yaml:"sample_interval"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := billgen.DefaultOptions()
	return Config{
		Server: ServerConfig{Addr: ":8585"},
		Cache: CacheConfig{
			MaxEntries:      128,
			TTL:             Duration(15 * time.Minute),
			JanitorInterval: Duration(time.Minute),
		},
		Bill: BillConfig{
			SecurityDepositPercent: opts.SecurityDepositPercent,
			IncomeTaxPercent:       opts.IncomeTaxPercent,
			GSTPercent:             opts.GSTPercent,
			DeviationLimitPercent:  opts.DeviationLimitPercent,
			LDPerDayPercent:        opts.LDPerDayPercent,
			LDCapPercent:           opts.LDCapPercent,
		},
		Batch:  BatchConfig{Workers: 4},
		Memory: MemoryConfig{ThresholdMB: 512, SampleInterval: Duration(30 * time.Second)},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file over the defaults. An empty
// path returns the defaults. A .env file in the working directory is read
// first so that ${VAR} style environment overrides are available.
func Load(path string) (Config, error) {
	// Missing .env is fine; it only exists in deployed setups.
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		applyEnv(&cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides selected settings from the environment.
func applyEnv(cfg *Config) {
	if addr := os.Getenv("BILLGEN_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if path := os.Getenv("BILLGEN_CACHE_PATH"); path != "" {
		cfg.Cache.DiskPath = path
	}
	if level := os.Getenv("BILLGEN_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// BillOptions maps the billing section to computation options.
func (c Config) BillOptions() billgen.Options {
	return billgen.Options{
		SecurityDepositPercent: c.Bill.SecurityDepositPercent,
		IncomeTaxPercent:       c.Bill.IncomeTaxPercent,
		GSTPercent:             c.Bill.GSTPercent,
		DeviationLimitPercent:  c.Bill.DeviationLimitPercent,
		LDPerDayPercent:        c.Bill.LDPerDayPercent,
		LDCapPercent:           c.Bill.LDCapPercent,
	}
}
