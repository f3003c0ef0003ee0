// Package config loads analyzer defaults from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	intervals "github.com/lucasjlepore/interval-report"
)

type Config struct {
	Search          SearchConfig `yaml:"search"`
	EffortThreshold float64      `yaml:"effort_threshold"`
}

type SearchConfig struct {
	IntervalPower    int `yaml:"interval_power"`
	IntervalDuration int `yaml:"interval_duration"`
	RecoveryDuration int `yaml:"recovery_duration"`
	LongestRecovery  int `yaml:"longest_recovery"`
}

// Default returns the built-in analyzer defaults.
func Default() *Config {
	sc := intervals.DefaultSearchConfig()
	return &Config{
		Search: SearchConfig{
			IntervalPower:    sc.IntervalPower,
			IntervalDuration: sc.IntervalDuration,
			RecoveryDuration: sc.RecoveryDuration,
			LongestRecovery:  sc.LongestRecovery,
		},
		EffortThreshold: intervals.DefaultEffortThreshold,
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. An empty path skips the file and keeps the defaults. Env vars:
//
//	INTERVALREPORT_INTERVAL_POWER, INTERVALREPORT_INTERVAL_DURATION,
//	INTERVALREPORT_RECOVERY_DURATION, INTERVALREPORT_LONGEST_RECOVERY,
//	INTERVALREPORT_EFFORT_THRESHOLD
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := intEnv("INTERVALREPORT_INTERVAL_POWER"); v > 0 {
		cfg.Search.IntervalPower = v
	}
	if v := intEnv("INTERVALREPORT_INTERVAL_DURATION"); v > 0 {
		cfg.Search.IntervalDuration = v
	}
	if v := intEnv("INTERVALREPORT_RECOVERY_DURATION"); v > 0 {
		cfg.Search.RecoveryDuration = v
	}
	if v := intEnv("INTERVALREPORT_LONGEST_RECOVERY"); v > 0 {
		cfg.Search.LongestRecovery = v
	}
	if v := os.Getenv("INTERVALREPORT_EFFORT_THRESHOLD"); v != "" {
		if pct, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EffortThreshold = pct
		}
	}
}

func intEnv(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (c *Config) validate() error {
	if c.Search.IntervalPower <= 0 {
		return fmt.Errorf("search.interval_power must be positive")
	}
	if c.Search.IntervalDuration <= 0 {
		return fmt.Errorf("search.interval_duration must be positive")
	}
	if c.Search.RecoveryDuration < 0 {
		return fmt.Errorf("search.recovery_duration must not be negative")
	}
	if c.Search.LongestRecovery <= 0 {
		return fmt.Errorf("search.longest_recovery must be positive")
	}
	if c.EffortThreshold < 0 || c.EffortThreshold > 100 {
		return fmt.Errorf("effort_threshold must be between 0 and 100")
	}
	return nil
}

// EngineSearchConfig converts to the engine representation.
func (c *Config) EngineSearchConfig() intervals.SearchConfig {
	return intervals.SearchConfig{
		LongestRecovery:  c.Search.LongestRecovery,
		RecoveryDuration: c.Search.RecoveryDuration,
		IntervalPower:    c.Search.IntervalPower,
		IntervalDuration: c.Search.IntervalDuration,
	}
}
