package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/scanning"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, []int{22, 80, 443, 8080, 21, 53}, cfg.Engine.CandidatePorts)
	assert.Equal(t, "127.0.0.1:8080", cfg.GetAPIAddress())

	defaults, err := cfg.ScanDefaults()
	require.NoError(t, err)
	assert.Equal(t, scanning.Config{
		Target:   "192.168.1.1",
		Range:    scanning.PortRange{Start: 1, End: 1024},
		ScanType: scanning.ScanTypeTCP,
	}, defaults)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid yaml config",
			file: "config.yaml",
			content: `
engine:
  tick_interval: 10ms
  open_probability: 0.5
  candidate_ports: [22, 3306]
  seed: 99
defaults:
  target: db.internal
  end_port: 4000
api:
  port: 9090
logging:
  level: debug
  format: json
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10*time.Millisecond, cfg.Engine.TickInterval)
				assert.Equal(t, 0.5, cfg.Engine.OpenProbability)
				assert.Equal(t, 0.30, cfg.Engine.ClosedProbability, "unset keys keep defaults")
				assert.Equal(t, uint64(99), cfg.Engine.Seed)
				assert.Equal(t, "db.internal", cfg.Defaults.Target)
				assert.Equal(t, 1, cfg.Defaults.StartPort)
				assert.Equal(t, 9090, cfg.API.Port)
				assert.Equal(t, logging.LevelDebug, cfg.Logging.Level)
				assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)

				params := cfg.Parameters()
				assert.Equal(t, []int{22, 3306}, params.CandidatePorts)
			},
		},
		{
			name:    "valid json config",
			file:    "config.json",
			content: `{"api": {"host": "0.0.0.0", "port": 8000}, "metrics": {"enabled": false}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:8000", cfg.GetAPIAddress())
				assert.False(t, cfg.Metrics.Enabled)
			},
		},
		{
			name:    "invalid yaml syntax",
			file:    "config.yaml",
			content: "engine: [unclosed",
			wantErr: true,
		},
		{
			name:    "invalid defaults",
			file:    "config.yaml",
			content: "defaults:\n  start_port: 500\n  end_port: 10\n",
			wantErr: true,
		},
		{
			name:    "invalid probability",
			file:    "config.yaml",
			content: "engine:\n  open_probability: 1.5\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParseErrorIsConfigError(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.yaml", "api: {port: [1]}"))

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeConfiguration))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero tick interval", func(c *Config) { c.Engine.TickInterval = 0 }, "engine.tick_interval"},
		{"negative closed probability", func(c *Config) { c.Engine.ClosedProbability = -0.1 }, "engine.closed_probability"},
		{"candidate out of range", func(c *Config) { c.Engine.CandidatePorts = []int{0} }, "engine.candidate_ports"},
		{"api port", func(c *Config) { c.API.Port = 70000 }, "api.port"},
		{"api host", func(c *Config) { c.API.Host = "" }, "api.host"},
		{"max request size", func(c *Config) { c.API.MaxRequestSize = 0 }, "api.max_request_size"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"refresh schedule", func(c *Config) { c.Metrics.RefreshSchedule = "every now and then" }, "metrics.refresh_schedule"},
		{"schedule name", func(c *Config) { c.Schedules = []ScheduleConfig{{Cron: "@daily", Target: "10.0.0.1", StartPort: 1, EndPort: 10}} }, "schedules[0].name"},
		{"schedule cron", func(c *Config) {
			c.Schedules = []ScheduleConfig{{Name: "n", Cron: "61 * * * *", Target: "10.0.0.1", StartPort: 1, EndPort: 10}}
		}, "schedules[0].cron"},
		{"duplicate schedule", func(c *Config) {
			sc := ScheduleConfig{Name: "n", Cron: "@daily", Target: "10.0.0.1", StartPort: 1, EndPort: 10}
			c.Schedules = []ScheduleConfig{sc, sc}
		}, "schedules[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_ScanDefaults(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Target = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeTargetInvalid), "underlying validation code is reachable")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portsim.yaml")
	cfg := Default()
	cfg.Engine.Seed = 7
	cfg.Engine.TickInterval = 5 * time.Millisecond
	cfg.Defaults.Target = "scanme.example.org"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_ScheduleScan(t *testing.T) {
	cfg := Default()
	cfg.Schedules = []ScheduleConfig{{Name: "nightly", Cron: "0 2 * * *", Target: "10.0.0.1", StartPort: 500, EndPort: 100}}

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodePortOrder))
}

func TestScheduleConfig_ScanConfig(t *testing.T) {
	sc := ScheduleConfig{Name: "nightly", Cron: "0 2 * * *", Target: "10.0.0.1", StartPort: 1, EndPort: 100, ScanType: "UDP"}

	cfg, err := sc.ScanConfig()

	require.NoError(t, err)
	assert.Equal(t, scanning.Config{
		Target:   "10.0.0.1",
		Range:    scanning.PortRange{Start: 1, End: 100},
		ScanType: scanning.ScanTypeUDP,
	}, cfg)
}

func TestLoad_Schedules(t *testing.T) {
	path := writeConfig(t, "schedules.yaml", `
schedules:
  - name: nightly
    cron: "0 2 * * *"
    target: 10.0.0.1
    start_port: 1
    end_port: 1024
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Schedules, 1)
	assert.Equal(t, "nightly", cfg.Schedules[0].Name)
	assert.Equal(t, 1024, cfg.Schedules[0].EndPort)
}
