package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/portsim/internal/config"
	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/results"
	"github.com/anstrom/portsim/internal/scanning"
	"github.com/anstrom/portsim/internal/services"
)

// idleScheduler never fires, so a run stays at its first port.
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

func fastEngine(opts ...scanning.Option) *scanning.Engine {
	base := []scanning.Option{
		scanning.WithInterval(time.Millisecond),
		scanning.WithRandom(scanning.NewRandomSource(42)),
		scanning.WithLogger(logging.NewDiscard()),
	}
	return scanning.NewEngine(append(base, opts...)...)
}

func tableRequest(target string, start, end int) scanRequest {
	return scanRequest{
		config: scanning.Config{Target: target, Range: scanning.PortRange{Start: start, End: end}, ScanType: scanning.ScanTypeTCP},
		view:   results.DefaultViewOptions(),
		format: formatTable,
	}
}

// resetScanFlags restores the scan flag variables after a test.
func resetScanFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		scanTarget, scanStart, scanEnd, scanType = "", 0, 0, ""
		scanFilter, scanSort, scanOrder = "all", "port", "asc"
		scanOutput, scanFormat = "", formatTable
		scanSeed, scanInterval = 0, 0
	})
}

func TestBuildScanRequest(t *testing.T) {
	resetScanFlags(t)
	cfg := config.Default()

	t.Run("defaults from config", func(t *testing.T) {
		scanFilter, scanSort, scanOrder, scanFormat = "", "", "", "table"

		req, err := buildScanRequest(cfg)
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.1", req.config.Target)
		assert.Equal(t, scanning.PortRange{Start: 1, End: 1024}, req.config.Range)
		assert.Equal(t, scanning.ScanTypeTCP, req.config.ScanType)
		assert.Equal(t, results.DefaultViewOptions(), req.view)
	})

	t.Run("flags override config", func(t *testing.T) {
		scanTarget, scanStart, scanEnd, scanType = "10.0.0.5", 20, 30, "UDP"
		scanFilter, scanSort, scanOrder, scanFormat = "open", "service", "desc", "JSON"

		req, err := buildScanRequest(cfg)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", req.config.Target)
		assert.Equal(t, scanning.PortRange{Start: 20, End: 30}, req.config.Range)
		assert.Equal(t, scanning.ScanTypeUDP, req.config.ScanType)
		assert.Equal(t, results.ViewOptions{Filter: results.FilterOpen, SortBy: results.SortByService, Order: results.Descending}, req.view)
		assert.Equal(t, formatJSON, req.format)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		scanTarget, scanStart, scanEnd = "", 0, 0

		scanType, scanFilter, scanSort, scanOrder, scanFormat = "xmas", "", "", "", "table"
		_, err := buildScanRequest(cfg)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidOption))

		scanType, scanFilter = "", "filtered"
		_, err = buildScanRequest(cfg)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidOption))

		scanFilter, scanFormat = "", "xml"
		_, err = buildScanRequest(cfg)
		assert.Error(t, err)
	})
}

func TestExecuteScan_Completes(t *testing.T) {
	var out, progress bytes.Buffer

	err := executeScan(context.Background(), fastEngine(), tableRequest("10.0.0.5", 1, 100), &out, &progress)
	require.NoError(t, err)

	assert.Contains(t, strings.ToUpper(out.String()), "PORT")
	assert.Contains(t, strings.ToUpper(out.String()), "SERVICE")
	assert.Contains(t, progress.String(), "100.0% completed")
	assert.Contains(t, progress.String(), "Target: 10.0.0.5 | Ports: 1-100 |")
}

func TestExecuteScan_JSONAndExport(t *testing.T) {
	dir := t.TempDir()
	req := tableRequest("10.0.0.5", 1, 100)
	req.format = formatJSON
	req.output = dir + string(filepath.Separator)

	var out, progress bytes.Buffer
	require.NoError(t, executeScan(context.Background(), fastEngine(), req, &out, &progress))

	var printed []scanning.Finding
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))

	files, err := filepath.Glob(filepath.Join(dir, "portscan-10.0.0.5-*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var exported []scanning.Finding
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Len(t, exported, len(printed))
	assert.Contains(t, progress.String(), "Exported")
}

func TestExecuteScan_CancelKeepsFindings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := fastEngine(scanning.WithScheduler(idleScheduler{}))
	var out, progress bytes.Buffer
	require.NoError(t, executeScan(ctx, engine, tableRequest("10.0.0.5", 1, 100), &out, &progress))

	assert.Equal(t, scanning.StatusCancelled, engine.Status())
	assert.Contains(t, progress.String(), "Scan cancelled")
	assert.Contains(t, out.String(), "No findings")
	_, ok := engine.Summary()
	assert.False(t, ok)
}

func TestExecuteScan_RejectsInvalidConfig(t *testing.T) {
	engine := fastEngine()
	var out, progress bytes.Buffer

	err := executeScan(context.Background(), engine, tableRequest("10.0.0.5", 50, 10), &out, &progress)

	assert.True(t, errors.IsCode(err, errors.CodePortOrder))
	assert.Equal(t, scanning.StatusIdle, engine.Status())
	assert.Empty(t, out.String())
}

func TestRenderProgress(t *testing.T) {
	line := renderProgress(scanning.Snapshot{
		Status:    scanning.StatusRunning,
		PortRange: scanning.PortRange{Start: 1, End: 100},
		Cursor:    51,
		Progress:  50,
		Findings: []scanning.Finding{
			{Port: 22, Status: scanning.PortOpen},
			{Port: 30, Status: scanning.PortClosed},
		},
	})

	assert.Equal(t, "[###############...............]  50.0% running   port 51/100 open 1", line)
}

func TestPrintFindingsTable(t *testing.T) {
	var buf bytes.Buffer
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, printFindings(&buf, []scanning.Finding{
		{Port: 22, Status: scanning.PortOpen, Service: "SSH", Timestamp: stamp},
	}, formatTable))

	assert.Contains(t, buf.String(), "22")
	assert.Contains(t, buf.String(), "OPEN")
	assert.Contains(t, buf.String(), "SSH")
	assert.Contains(t, buf.String(), "03:04:05")
}

func TestPrintServices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printServices(&buf, services.All()))

	out := buf.String()
	assert.Contains(t, out, "27017")
	assert.Contains(t, out, "MongoDB")
	assert.Less(t, strings.Index(out, "FTP"), strings.Index(out, "MongoDB"))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Cleanup(func() { configForce = false })

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	require.NoError(t, runConfigInit(configInitCmd, []string{path}))
	assert.Contains(t, out.String(), path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	assert.Error(t, runConfigInit(configInitCmd, []string{path}))

	configForce = true
	assert.NoError(t, runConfigInit(configInitCmd, []string{path}))
}

func TestNewEngineUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.TickInterval = time.Millisecond
	cfg.Engine.Seed = 7

	engine := newEngine(cfg, nil, logging.NewDiscard())
	require.NoError(t, engine.Start(scanning.Config{Target: "localhost", Range: scanning.PortRange{Start: 1, End: 5}}))

	assert.Eventually(t, func() bool { return engine.Status() == scanning.StatusCompleted },
		2*time.Second, time.Millisecond)
}

func TestPrintSchedules(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 30, 0, 0, time.UTC)
	entries := []config.ScheduleConfig{
		{Name: "nightly", Cron: "0 2 * * *", Target: "10.0.0.1", StartPort: 1, EndPort: 1024},
		{Name: "weekly", Cron: "0 3 * * 0", Target: "scanme.example.org", StartPort: 20, EndPort: 25, ScanType: "udp"},
	}

	var buf bytes.Buffer
	require.NoError(t, printSchedules(&buf, entries, now))

	out := buf.String()
	assert.Contains(t, out, "nightly")
	assert.Contains(t, out, "2024-05-01T02:00:00Z")
	assert.Contains(t, out, "1-1024")
	assert.Contains(t, out, "tcp")
	assert.Contains(t, out, "2024-05-05T03:00:00Z")
	assert.Contains(t, out, "udp")
}

func TestPrintSchedules_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSchedules(&buf, nil, time.Now()))
	assert.Equal(t, "No schedules configured\n", buf.String())
}
