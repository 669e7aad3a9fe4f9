// Package config loads, validates and saves the portsim configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/scanning"
)

const (
	configDirPerm  = 0o755
	configFilePerm = 0o644
)

// Config represents the complete application configuration
type Config struct {
	// Simulation engine configuration
	Engine EngineConfig `yaml:"engine" json:"engine"`

	// Scan form defaults
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`

	// API configuration
	API APIConfig `yaml:"api" json:"api"`

	// Logging configuration
	Logging logging.Config `yaml:"logging" json:"logging"`

	// Metrics configuration
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Recurring scans started by the API server
	Schedules []ScheduleConfig `yaml:"schedules,omitempty" json:"schedules,omitempty"`
}

// EngineConfig holds simulation settings
type EngineConfig struct {
	// Pause between two simulated probes
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"`

	// Chance per tick of reporting a candidate port open
	OpenProbability float64 `yaml:"open_probability" json:"open_probability"`

	// Chance per sampled tick of reporting the cursor closed
	ClosedProbability float64 `yaml:"closed_probability" json:"closed_probability"`

	// Ports that may be reported open
	CandidatePorts []int `yaml:"candidate_ports" json:"candidate_ports"`

	// Random seed, 0 picks a random one
	Seed uint64 `yaml:"seed" json:"seed"`
}

// DefaultsConfig holds the values a new scan starts from
type DefaultsConfig struct {
	Target    string `yaml:"target" json:"target"`
	StartPort int    `yaml:"start_port" json:"start_port"`
	EndPort   int    `yaml:"end_port" json:"end_port"`
	ScanType  string `yaml:"scan_type" json:"scan_type"`
}

// APIConfig holds API server settings
type APIConfig struct {
	// Listen address
	Host string `yaml:"host" json:"host"`

	// Listen port
	Port int `yaml:"port" json:"port"`

	// HTTP server timeouts
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" json:"idle_timeout"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Maximum request body size
	MaxRequestSize int64 `yaml:"max_request_size" json:"max_request_size"`

	// CORS settings
	CORS CORSConfig `yaml:"cors" json:"cors"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" json:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" json:"allowed_headers"`
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	// Expose /metrics and record engine events
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Cron spec for refreshing system gauges
	RefreshSchedule string `yaml:"refresh_schedule" json:"refresh_schedule"`
}

// ScheduleConfig describes one recurring scan
type ScheduleConfig struct {
	Name      string `yaml:"name" json:"name"`
	Cron      string `yaml:"cron" json:"cron"`
	Target    string `yaml:"target" json:"target"`
	StartPort int    `yaml:"start_port" json:"start_port"`
	EndPort   int    `yaml:"end_port" json:"end_port"`
	ScanType  string `yaml:"scan_type,omitempty" json:"scan_type,omitempty"`
}

// ScanConfig returns the scan the schedule starts.
func (s ScheduleConfig) ScanConfig() (scanning.Config, error) {
	scanType, err := scanning.ParseScanType(s.ScanType)
	if err != nil {
		return scanning.Config{}, err
	}
	cfg := scanning.Config{
		Target:   s.Target,
		Range:    scanning.PortRange{Start: s.StartPort, End: s.EndPort},
		ScanType: scanType,
	}
	if err := cfg.Validate(); err != nil {
		return scanning.Config{}, err
	}
	return cfg, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickInterval:      scanning.DefaultTickInterval,
			OpenProbability:   0.10,
			ClosedProbability: 0.30,
			CandidatePorts:    slices.Clone(scanning.DefaultCandidatePorts),
		},
		Defaults: DefaultsConfig{
			Target:    "192.168.1.1",
			StartPort: 1,
			EndPort:   1024,
			ScanType:  string(scanning.ScanTypeTCP),
		},
		API: APIConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1024 * 1024, // 1MB
			CORS: CORSConfig{
				Enabled:        true,
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			},
		},
		Logging: logging.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled:         true,
			RefreshSchedule: "@every 15s",
		},
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "failed to read config file", err)
	}

	// JSON is a subset of YAML, so one decoder covers both extensions.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration,
			fmt.Sprintf("failed to parse config file %s", filepath.Base(path)), err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPerm); err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to write config file", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}

	if _, err := c.ScanDefaults(); err != nil {
		return errors.WrapConfigError(errors.CodeValidation, "invalid scan defaults", err)
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		return errors.ErrConfigInvalid("api.port", c.API.Port)
	}
	if c.API.Host == "" {
		return errors.ErrConfigInvalid("api.host", c.API.Host)
	}
	if c.API.MaxRequestSize <= 0 {
		return errors.ErrConfigInvalid("api.max_request_size", c.API.MaxRequestSize)
	}

	validLogLevels := map[logging.LogLevel]bool{
		logging.LevelDebug: true,
		logging.LevelInfo:  true,
		logging.LevelWarn:  true,
		logging.LevelError: true,
	}
	if !validLogLevels[c.Logging.Level] {
		return errors.ErrConfigInvalid("logging.level", c.Logging.Level)
	}
	if c.Logging.Format != logging.FormatText && c.Logging.Format != logging.FormatJSON {
		return errors.ErrConfigInvalid("logging.format", c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Metrics.RefreshSchedule); err != nil {
			return errors.ErrConfigInvalid("metrics.refresh_schedule", c.Metrics.RefreshSchedule)
		}
	}

	return c.validateSchedules()
}

func (c *Config) validateSchedules() error {
	seen := make(map[string]bool, len(c.Schedules))
	for i, sc := range c.Schedules {
		field := fmt.Sprintf("schedules[%d]", i)
		if sc.Name == "" || seen[sc.Name] {
			return errors.ErrConfigInvalid(field+".name", sc.Name)
		}
		seen[sc.Name] = true
		if _, err := cron.ParseStandard(sc.Cron); err != nil {
			return errors.ErrConfigInvalid(field+".cron", sc.Cron)
		}
		if _, err := sc.ScanConfig(); err != nil {
			return errors.WrapConfigError(errors.CodeValidation, "invalid schedule "+sc.Name, err)
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.TickInterval <= 0 {
		return errors.ErrConfigInvalid("engine.tick_interval", c.Engine.TickInterval)
	}
	if c.Engine.OpenProbability < 0 || c.Engine.OpenProbability > 1 {
		return errors.ErrConfigInvalid("engine.open_probability", c.Engine.OpenProbability)
	}
	if c.Engine.ClosedProbability < 0 || c.Engine.ClosedProbability > 1 {
		return errors.ErrConfigInvalid("engine.closed_probability", c.Engine.ClosedProbability)
	}
	for _, port := range c.Engine.CandidatePorts {
		if port < 1 || port > 65535 {
			return errors.ErrConfigInvalid("engine.candidate_ports", port)
		}
	}
	return nil
}

// Parameters returns the engine's finding generation parameters.
func (c *Config) Parameters() scanning.Parameters {
	return scanning.Parameters{
		OpenProbability:   c.Engine.OpenProbability,
		ClosedProbability: c.Engine.ClosedProbability,
		CandidatePorts:    slices.Clone(c.Engine.CandidatePorts),
	}
}

// ScanDefaults returns the default scan configuration, validated.
func (c *Config) ScanDefaults() (scanning.Config, error) {
	scanType, err := scanning.ParseScanType(c.Defaults.ScanType)
	if err != nil {
		return scanning.Config{}, err
	}
	cfg := scanning.Config{
		Target:   c.Defaults.Target,
		Range:    scanning.PortRange{Start: c.Defaults.StartPort, End: c.Defaults.EndPort},
		ScanType: scanType,
	}
	if err := cfg.Validate(); err != nil {
		return scanning.Config{}, err
	}
	return cfg, nil
}

// GetAPIAddress returns the full API address
func (c *Config) GetAPIAddress() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
