package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/anstrom/portsim/internal/config"
	"github.com/anstrom/portsim/internal/export"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/results"
	"github.com/anstrom/portsim/internal/scanning"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	progressBarWidth = 30
	timestampLayout  = "15:04:05"
)

var (
	scanTarget   string
	scanStart    int
	scanEnd      int
	scanType     string
	scanFilter   string
	scanSort     string
	scanOrder    string
	scanOutput   string
	scanFormat   string
	scanSeed     uint64
	scanInterval time.Duration
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a simulated port scan in the terminal",
	Long: `Run a simulated scan against a target and print the findings.

Progress is drawn on stderr while the scan runs. Press Ctrl+C to cancel;
findings collected so far are still printed. Values not given on the command
line come from the defaults section of the configuration file.`,
	Example: `  portsim scan --target 192.168.1.1 --start 1 --end 1024
  portsim scan --target scanme.example.org --filter open --sort service
  portsim scan --target 10.0.0.5 --format json --output ./exports/
  portsim scan --seed 42 --interval 1ms`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanTarget, "target", "t", "", "Target IP address or hostname")
	scanCmd.Flags().IntVar(&scanStart, "start", 0, "First port of the range")
	scanCmd.Flags().IntVar(&scanEnd, "end", 0, "Last port of the range")
	scanCmd.Flags().StringVar(&scanType, "type", "", "Scan type: tcp, syn, udp, comprehensive")
	scanCmd.Flags().StringVar(&scanFilter, "filter", string(results.FilterAll), "Show all, open or closed ports")
	scanCmd.Flags().StringVar(&scanSort, "sort", string(results.SortByPort), "Sort by port, status or service")
	scanCmd.Flags().StringVar(&scanOrder, "order", string(results.Ascending), "Sort order: asc or desc")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write the JSON export to this file or directory")
	scanCmd.Flags().StringVar(&scanFormat, "format", formatTable, "Output format: table or json")
	scanCmd.Flags().Uint64Var(&scanSeed, "seed", 0, "Random seed for reproducible runs (0 picks one)")
	scanCmd.Flags().DurationVar(&scanInterval, "interval", 0, "Pause between probes (default from config)")
}

// scanRequest collects the resolved inputs of one scan command.
type scanRequest struct {
	config scanning.Config
	view   results.ViewOptions
	format string
	output string
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req, err := buildScanRequest(cfg)
	if err != nil {
		return err
	}

	if scanSeed != 0 {
		cfg.Engine.Seed = scanSeed
	}
	if scanInterval > 0 {
		cfg.Engine.TickInterval = scanInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := newEngine(cfg, nil, scanLogger(cmd.ErrOrStderr()))
	return executeScan(ctx, engine, req, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildScanRequest merges flags over the configured defaults.
func buildScanRequest(cfg *config.Config) (scanRequest, error) {
	sc := scanning.Config{
		Target:   cfg.Defaults.Target,
		Range:    scanning.PortRange{Start: cfg.Defaults.StartPort, End: cfg.Defaults.EndPort},
		ScanType: scanning.ScanType(cfg.Defaults.ScanType),
	}
	if scanTarget != "" {
		sc.Target = scanTarget
	}
	if scanStart != 0 {
		sc.Range.Start = scanStart
	}
	if scanEnd != 0 {
		sc.Range.End = scanEnd
	}
	if scanType != "" {
		st, err := scanning.ParseScanType(scanType)
		if err != nil {
			return scanRequest{}, err
		}
		sc.ScanType = st
	}

	view, err := results.ParseViewOptions(scanFilter, scanSort, scanOrder)
	if err != nil {
		return scanRequest{}, err
	}

	format := strings.ToLower(scanFormat)
	if format != formatTable && format != formatJSON {
		return scanRequest{}, fmt.Errorf("unsupported format %q (use table or json)", scanFormat)
	}

	return scanRequest{config: sc, view: view, format: format, output: scanOutput}, nil
}

// scanLogger keeps engine logs off stdout so they do not mix with results.
func scanLogger(w io.Writer) *logging.Logger {
	logger := logging.Default()
	logCfg := logger.Config()
	if logCfg.Output != "" && logCfg.Output != "stdout" {
		return logger
	}
	if !verbose {
		logCfg.Level = logging.LevelWarn
	}
	return logging.NewWithWriter(logCfg, w)
}

// scanEngine is the part of the engine a terminal scan drives.
type scanEngine interface {
	Start(cfg scanning.Config) error
	Cancel()
	Snapshot() scanning.Snapshot
	Summary() (scanning.Summary, bool)
	Subscribe(obs scanning.Observer) func()
}

// executeScan runs one scan to completion or until ctx is cancelled, then
// prints the findings view, the summary and the export file if requested.
func executeScan(ctx context.Context, engine scanEngine, req scanRequest, out, progress io.Writer) error {
	updates := make(chan scanning.Snapshot, 1)
	finished := make(chan struct{})
	var once sync.Once

	unsubscribe := engine.Subscribe(scanning.ObserverFunc(func(s scanning.Snapshot) {
		if s.Status.IsTerminal() {
			once.Do(func() { close(finished) })
		}
		// Keep only the latest snapshot for the progress line.
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- s:
		default:
		}
	}))
	defer unsubscribe()

	if err := engine.Start(req.config); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		select {
		case <-ctx.Done():
			engine.Cancel()
			<-finished
			break wait
		case <-finished:
			break wait
		case <-ticker.C:
			select {
			case s := <-updates:
				fmt.Fprint(progress, "\r"+renderProgress(s))
			default:
			}
		}
	}

	snap := engine.Snapshot()
	fmt.Fprintln(progress, "\r"+renderProgress(snap))

	if err := printFindings(out, results.View(snap.Findings, req.view), req.format); err != nil {
		return err
	}

	if summary, ok := engine.Summary(); ok {
		fmt.Fprintln(progress, summary.String())
	} else if snap.Status == scanning.StatusCancelled {
		fmt.Fprintf(progress, "Scan cancelled at port %d: %d findings collected\n", snap.Cursor, len(snap.Findings))
	}

	if req.output != "" {
		data, err := scanning.MarshalFindings(snap.Findings)
		if err != nil {
			return err
		}
		path, err := export.WriteFile(req.output, snap.Target, data, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Exported %d findings to %s\n", len(snap.Findings), path)
	}

	return nil
}

// renderProgress draws a one-line progress bar for s.
func renderProgress(s scanning.Snapshot) string {
	filled := int(s.Progress / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)

	return fmt.Sprintf("[%s] %5.1f%% %-9s port %d/%d open %d",
		bar, s.Progress, s.Status, min(s.Cursor, s.PortRange.End), s.PortRange.End, len(s.OpenPorts()))
}

// printFindings writes findings as a table or as the JSON export document.
func printFindings(w io.Writer, findings []scanning.Finding, format string) error {
	if format == formatJSON {
		data, err := scanning.MarshalFindings(findings)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "No findings")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Port", "Status", "Service", "Time")
	for _, f := range findings {
		if err := table.Append([]string{
			fmt.Sprintf("%d", f.Port),
			strings.ToUpper(string(f.Status)),
			f.Service,
			f.Timestamp.Format(timestampLayout),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
