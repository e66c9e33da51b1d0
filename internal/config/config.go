// Package config loads daemon settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/psu-debug/internal/gpio"
)

// Config contains daemon configuration.
type Config struct {
	LoopInterval time.Duration `yaml:"loop_interval"`
	GPIOChip     string        `yaml:"gpio_chip"`
	ADCPin       int           `yaml:"adc_pin"` // BCM pin of the ADC data-ready line; -1 disables
	NTPServer    string        `yaml:"ntp_server"`
	NTPInterval  time.Duration `yaml:"ntp_interval"`
	TraceFile    string        `yaml:"trace_file"` // trace lines are also appended here
	Textfile     string        `yaml:"textfile"`   // Prometheus textfile path
	Log          Log           `yaml:"log"`
}

// Log configures the daemon's own logging.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LoopInterval: 10 * time.Millisecond,
		GPIOChip:     gpio.DefaultChip,
		ADCPin:       gpio.DefaultPinADC,
		NTPInterval:  10 * time.Minute,
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.LoopInterval <= 0 {
		errs = append(errs, fmt.Errorf("loop_interval must be positive, got %v", c.LoopInterval))
	}
	if c.ADCPin >= 0 && c.GPIOChip == "" {
		errs = append(errs, errors.New("gpio_chip is required when adc_pin is set"))
	}
	if c.NTPServer != "" && c.NTPInterval <= 0 {
		errs = append(errs, fmt.Errorf("ntp_interval must be positive, got %v", c.NTPInterval))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
